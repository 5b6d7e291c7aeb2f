package launch

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// nicknameLimit is the maximum nickname length accepted by the client.
const nicknameLimit = 20

// sanitizeNickname trims the nickname and enforces the client's length
// limit. Longer nicknames are truncated silently; an empty result after
// trimming is rejected.
func sanitizeNickname(raw string) (string, error) {
	nick := strings.TrimSpace(raw)
	if nick == "" {
		return "", ErrEmptyNickname
	}
	if utf8.RuneCountInString(nick) > nicknameLimit {
		nick = string([]rune(nick)[:nicknameLimit])
	}
	return nick, nil
}

// target resolves the connection target for a request: the override when
// supplied, otherwise the canonical server from the configuration.
func (c Config) target(srv *ServerOverride) (ip string, port int) {
	ip, port = c.DefaultIP, c.DefaultPort
	if srv != nil {
		if srv.IP != "" {
			ip = srv.IP
		}
		if srv.Port != 0 {
			port = srv.Port
		}
	}
	return ip, port
}

// buildArgs constructs the client's fixed argument vector. The grammar is
// owned by the game client and must not be reordered.
func buildArgs(cfg Config, nickname, ip string, port int) []string {
	return []string{
		"-c",
		"-h", ip,
		"-p", strconv.Itoa(port),
		"-mem", strconv.Itoa(cfg.MemoryMB),
		"-n", nickname,
		"-arizona",
		"-x",
		"-window",
		"-cdn", "1,1,1",
	}
}

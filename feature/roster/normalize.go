package roster

import (
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Server is the canonical, fixed-shape representation of one roster entry,
// independent of the source payload's field naming.
type Server struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Online      int    `json:"online"`
	Queue       int    `json:"queue"`
	Recommended bool   `json:"recommended"`
	IP          string `json:"ip"`
	Port        int    `json:"port"`
	MaxPlayers  int    `json:"maxplayers"`
}

// Defaults applied when no alternative carries a usable value.
const (
	defaultPort       = 7777
	defaultMaxPlayers = 1000
	defaultDomain     = "arizona-rp.com"

	// Heuristic for servers not flagged as recommended by the payload:
	// popular and currently uncongested.
	recommendedOnlineFloor = 400
)

// Alternative source keys per canonical field, tried in priority order. The
// first present, truthy value wins. Deployments disagree on naming, so this
// table is the whole normalization contract.
var (
	numberKeys     = []string{"number", "serverNumber", "id"}
	onlineKeys     = []string{"online", "playersOnline"}
	queueKeys      = []string{"queue", "queueLength"}
	maxPlayersKeys = []string{"maxplayers", "maxPlayers", "maxonline"}
	recommendKeys  = []string{"recomend", "recommended"}
)

// normalize converts a raw payload into canonical records. Entries that are
// not object-shaped are logged and skipped, never fatal.
func normalize(doc gjson.Result, logger *zap.Logger) ([]Server, error) {
	entries, err := extractList(doc)
	if err != nil {
		return nil, err
	}

	servers := make([]Server, 0, len(entries))
	for idx, entry := range entries {
		if !entry.IsObject() {
			logger.Warn("Skipping non-object roster entry",
				zap.Int("index", idx),
				zap.String("type", entry.Type.String()),
			)
			continue
		}
		servers = append(servers, normalizeEntry(idx, entry))
	}
	return servers, nil
}

// extractList detects the payload's top-level shape, tried in order: an
// object with a "query" array, a bare array, or a plain object whose values
// form the list.
func extractList(doc gjson.Result) ([]gjson.Result, error) {
	if doc.IsObject() {
		if q := doc.Get("query"); q.IsArray() {
			return q.Array(), nil
		}
		var out []gjson.Result
		doc.ForEach(func(_, v gjson.Result) bool {
			out = append(out, v)
			return true
		})
		return out, nil
	}
	if doc.IsArray() {
		return doc.Array(), nil
	}
	return nil, fmt.Errorf("%w: unsupported top-level shape %s", ErrMalformedPayload, doc.Type)
}

func normalizeEntry(idx int, entry gjson.Result) Server {
	number := int(firstTruthyInt(entry, int64(idx+1), numberKeys...))
	online := int(firstTruthyInt(entry, 0, onlineKeys...))
	queue := int(firstTruthyInt(entry, 0, queueKeys...))

	s := Server{
		Number:     number,
		Name:       stringOr(entry, "name", fmt.Sprintf("Server %d", number)),
		Online:     online,
		Queue:      queue,
		MaxPlayers: int(firstTruthyInt(entry, defaultMaxPlayers, maxPlayersKeys...)),
		IP:         stringOr(entry, "ip", fmt.Sprintf("server%d.%s", number, defaultDomain)),
		Port:       intOr(entry, "port", defaultPort),
	}

	s.Recommended = firstTruthyBool(entry, recommendKeys...) ||
		(online > recommendedOnlineFloor && queue == 0)

	return s
}

// truthy mirrors the loose presence test used on the source payload: null,
// false, zero and the empty string all count as absent.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.False, gjson.Null:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return v.Exists()
	}
}

func firstTruthyInt(entry gjson.Result, def int64, keys ...string) int64 {
	for _, k := range keys {
		if v := entry.Get(k); truthy(v) {
			return v.Int()
		}
	}
	return def
}

func firstTruthyBool(entry gjson.Result, keys ...string) bool {
	for _, k := range keys {
		if truthy(entry.Get(k)) {
			return true
		}
	}
	return false
}

// stringOr and intOr use plain presence: an explicitly empty value in the
// payload is kept as-is rather than replaced by the default.
func stringOr(entry gjson.Result, key, def string) string {
	if v := entry.Get(key); v.Exists() {
		return v.String()
	}
	return def
}

func intOr(entry gjson.Result, key string, def int) int {
	if v := entry.Get(key); v.Exists() {
		return int(v.Int())
	}
	return def
}

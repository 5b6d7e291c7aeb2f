package launch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"launcher-agent/core/history"
	"launcher-agent/core/prefs"
	"launcher-agent/core/procs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stderrExcerptLimit caps the error excerpt reported from a failed client.
const stderrExcerptLimit = 100

// Service is the launch supervisor. It validates requests, reconciles
// conflicting client instances, spawns the game client and confirms it
// survived its startup window.
type Service struct {
	cfg      Config
	registry procs.Registry
	prefs    *prefs.Store
	history  *history.Store
	logger   *zap.Logger

	// attemptMu is the single-slot ticket serializing attempts, so the
	// kill -> spawn -> confirm sequence of one attempt can never interleave
	// with another's.
	attemptMu sync.Mutex

	mu   sync.RWMutex
	last *Outcome
}

// NewService creates a new launch supervisor.
func NewService(cfg Config, registry procs.Registry, prefStore *prefs.Store, histStore *history.Store, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		registry: registry,
		prefs:    prefStore,
		history:  histStore,
		logger:   logger,
	}
}

// Launch validates the request and starts a background launch attempt.
// It returns the attempt id immediately; the terminal outcome is retained
// and queryable via Last. Validation failures are returned synchronously so
// the shell gets immediate feedback, before any process is touched.
func (s *Service) Launch(req Request) (string, error) {
	nick, err := s.validate(req)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	go func() {
		out := s.run(id, nick, req.Server)
		s.setLast(out)
	}()
	return id, nil
}

// LaunchSync runs one launch attempt to its terminal outcome. It backs the
// CLI, where blocking is the point.
func (s *Service) LaunchSync(req Request) (Outcome, error) {
	nick, err := s.validate(req)
	if err != nil {
		return Outcome{}, err
	}

	out := s.run(uuid.New().String(), nick, req.Server)
	s.setLast(out)
	return out, nil
}

// Last returns the most recent terminal outcome, or nil when no attempt has
// finished yet.
func (s *Service) Last() *Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	out := *s.last
	return &out
}

func (s *Service) setLast(out Outcome) {
	s.mu.Lock()
	s.last = &out
	s.mu.Unlock()
}

// validate covers the ValidatingInput stage: nickname hygiene and the
// executable precondition, checked before any side effect.
func (s *Service) validate(req Request) (string, error) {
	nick, err := sanitizeNickname(req.Nickname)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(s.cfg.Path); err != nil {
		s.logger.Error("Game client executable missing", zap.String("path", s.cfg.Path))
		return "", fmt.Errorf("%w: %s", ErrLauncherMissing, s.cfg.Path)
	}
	return nick, nil
}

// run drives one attempt through the remaining stages. The stage order is a
// contract: killing conflicting instances strictly precedes spawning, which
// strictly precedes the liveness check.
func (s *Service) run(id, nick string, srv *ServerOverride) Outcome {
	s.attemptMu.Lock()
	defer s.attemptMu.Unlock()

	log := s.logger.With(zap.String("attempt_id", id), zap.String("nickname", nick))
	started := time.Now()
	ctx := context.Background()

	// ReconcilingProcesses
	log.Info("Launch stage", zap.Stringer("stage", StageReconcilingProcesses))
	killed := procs.KillMatching(ctx, s.registry, s.cfg.ProcessMatch, log)
	if killed > 0 {
		log.Info("Conflicting instances terminated", zap.Int("count", killed))
	}
	time.Sleep(s.cfg.SettleDelay)

	// Spawning
	ip, port := s.cfg.target(srv)
	args := buildArgs(s.cfg, nick, ip, port)
	log.Info("Launch stage", zap.Stringer("stage", StageSpawning),
		zap.String("ip", ip), zap.Int("port", port),
		zap.Strings("args", args),
	)

	cmd := exec.Command(s.cfg.Path, args...)
	cmd.Dir = filepath.Dir(s.cfg.Path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	detachProcess(cmd)

	if err := cmd.Start(); err != nil {
		log.Error("Failed to spawn game client", zap.Error(err))
		return s.finish(log, Outcome{
			AttemptID: id,
			Succeeded: false,
			Message:   fmt.Sprintf("Launch failed: %v", err),
			StartedAt: started,
		}, nick, ip, port, srv)
	}

	pid := cmd.Process.Pid
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	// ConfirmingLiveness
	log.Info("Launch stage", zap.Stringer("stage", StageConfirmingLiveness), zap.Int("pid", pid))

	var out Outcome
	select {
	case werr := <-done:
		// The client died inside its startup window.
		excerpt := stderrExcerpt(stderr.Bytes())
		log.Error("Game client exited during startup",
			zap.Int("pid", pid),
			zap.String("stderr", excerpt),
			zap.Error(werr),
		)
		out = Outcome{
			AttemptID: id,
			Succeeded: false,
			Message:   fmt.Sprintf("Launch failed: %s (%s)", excerpt, exitInfo(werr)),
			StartedAt: started,
		}
	case <-time.After(s.cfg.LivenessDelay):
		log.Info("Game client running", zap.Int("pid", pid))
		out = Outcome{
			AttemptID: id,
			Succeeded: true,
			Message:   fmt.Sprintf("Game starting for %s on server %s", nick, ip),
			PID:       &pid,
			StartedAt: started,
		}
	}

	return s.finish(log, out, nick, ip, port, srv)
}

// finish persists side effects of the terminal outcome. Preference and
// history failures are logged and swallowed; they never downgrade a
// successful launch.
func (s *Service) finish(log *zap.Logger, out Outcome, nick, ip string, port int, srv *ServerOverride) Outcome {
	out.FinishedAt = time.Now()

	if out.Succeeded {
		p := s.prefs.Load()
		p.LastNickname = nick
		if srv != nil && srv.Number != 0 {
			n := srv.Number
			p.LastServer = &n
		}
		if err := s.prefs.Save(p); err != nil {
			log.Warn("Failed to save preferences", zap.Error(err))
		}
	}

	rec := history.Attempt{
		AttemptID:  out.AttemptID,
		Nickname:   nick,
		ServerIP:   ip,
		ServerPort: port,
		Succeeded:  out.Succeeded,
		Message:    out.Message,
		PID:        out.PID,
	}
	if srv != nil && srv.Number != 0 {
		n := srv.Number
		rec.ServerNumber = &n
	}
	if err := s.history.Record(rec); err != nil {
		log.Warn("Failed to record launch history", zap.Error(err))
	}

	return out
}

// stderrExcerpt decodes captured stderr best-effort: invalid UTF-8 bytes are
// replaced rather than raised, and the excerpt is capped.
func stderrExcerpt(raw []byte) string {
	text := strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
	if text == "" {
		return "unknown error"
	}
	if utf8.RuneCountInString(text) > stderrExcerptLimit {
		text = string([]rune(text)[:stderrExcerptLimit])
	}
	return text
}

func exitInfo(err error) string {
	if err == nil {
		return "exited cleanly"
	}
	return err.Error()
}

package alias

import (
	"log/slog"
	"strings"

	"thoreinstein.com/tai/pkg/command"
)

// Rules turns the aliases of every compatible pack into exact-phrase rules.
// Aliases with an empty phrase or command, phrases a built-in rule already
// recognizes, and phrases defined by an earlier pack are skipped with a
// warning.
func Rules(packs []*Pack, builtins *command.Matcher, logger *slog.Logger) []command.Rule {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var rules []command.Rule
	seen := make(map[string]string)

	for _, pack := range packs {
		if pack.Status != StatusCompatible {
			logger.Warn("skipping alias pack", "pack", pack.Name, "path", pack.Path, "status", pack.Status, "error", pack.Error)
			continue
		}

		for _, a := range pack.Manifest.Aliases {
			phrase := strings.Join(strings.Fields(a.Phrase), " ")
			run := strings.TrimSpace(a.Run)
			if phrase == "" || run == "" {
				logger.Warn("skipping incomplete alias", "pack", pack.Name, "phrase", a.Phrase)
				continue
			}

			if p, ok := builtins.Match(phrase); ok {
				logger.Warn("alias shadowed by built-in command", "pack", pack.Name, "phrase", phrase, "action", p.Action)
				continue
			}

			key := strings.ToLower(phrase)
			if owner, ok := seen[key]; ok {
				logger.Warn("duplicate alias phrase", "pack", pack.Name, "phrase", phrase, "defined_by", owner)
				continue
			}
			seen[key] = pack.Name

			rules = append(rules, command.AliasRule(phrase, run, a.Description))
		}
	}

	return rules
}

// Load scans s and returns the resulting alias rules. Scan failures are
// logged and yield no rules.
func Load(s *Scanner, builtins *command.Matcher, logger *slog.Logger) []command.Rule {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result, err := s.Scan()
	if err != nil {
		logger.Warn("failed to scan alias packs", "error", err)
		return nil
	}
	logger.Debug("scanned alias packs", "packs", len(result.Packs), "duration", result.Duration)

	return Rules(result.Packs, builtins, logger)
}

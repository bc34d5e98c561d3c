package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// MaxMessageLength is the Telegram limit for one text message, in characters.
const MaxMessageLength = 4096

// Notifier delivers a plain text report.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Telegram posts reports to a single chat.
type Telegram struct {
	bot    *telego.Bot
	chatID int64
	log    *slog.Logger
}

// NewTelegram creates a Telegram notifier for chatID.
func NewTelegram(token string, chatID int64, log *slog.Logger, opts ...telego.BotOption) (*Telegram, error) {
	opts = append([]telego.BotOption{telego.WithLogger(botLogger{log: log})}, opts...)
	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID, log: log}, nil
}

// Notify sends text, split into as many messages as the length limit requires.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	chunks := Chunk(text, MaxMessageLength)
	for i, chunk := range chunks {
		if _, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(t.chatID), chunk)); err != nil {
			return fmt.Errorf("send report part %d/%d: %w", i+1, len(chunks), err)
		}
	}
	t.log.Info("report sent to telegram", "chat_id", t.chatID, "parts", len(chunks))
	return nil
}

// Chunk splits text on line boundaries into pieces of at most limit
// characters. Lines longer than limit are cut.
func Chunk(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		for utf8.RuneCountInString(line) > limit {
			flush()
			head, rest := cut(line, limit)
			chunks = append(chunks, head)
			line = rest
		}
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		current.WriteString(line)
		size += n
	}
	flush()
	return chunks
}

func cut(s string, runes int) (string, string) {
	i := 0
	for pos := range s {
		if i == runes {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}

// botLogger routes telego diagnostics into slog.
type botLogger struct {
	log *slog.Logger
}

func (l botLogger) Debugf(format string, args ...any) {
	l.log.Debug(sprintf(format, args...), "component", "telego")
}

func (l botLogger) Errorf(format string, args ...any) {
	l.log.Error(sprintf(format, args...), "component", "telego")
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tutor-proxy/api/internal/tutor"
)

const maxMessageLen = 3900

const startText = "Hi! I'm your educational tutor. Send me a question about math, physics, chemistry or computer science.\nCommands: /health, /engine"

// Bot is the part of *tgbotapi.BotAPI the router needs.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Router struct {
	Bot     Bot
	Tutors  *tutor.Pool
	Log     *zap.Logger
	Timeout time.Duration

	sessions sessions
}

func (r *Router) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.answer(ctx, upd.Message.Chat.ID, text)
	}
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, startText)
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, upd.Message.CommandArguments())
	default:
		r.send(cid, "Unknown command")
	}
}

// handleEngineCommand switches the chat's engine.
//
//	/engine
//	/engine gemini
//	/engine gpt
func (r *Router) handleEngineCommand(chatID int64, args string) {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		t, err := r.Tutors.Get(r.sessions.engine(chatID))
		if err != nil {
			r.SendError(chatID, err)
			return
		}
		r.send(chatID, fmt.Sprintf("Current engine: %s (%s)\nUsage: /engine {%s}",
			t.Engine().Name(), t.Engine().GetModel(), strings.Join(r.Tutors.Names(), "|")))
		return
	}

	t, err := r.Tutors.Get(name)
	if err != nil {
		r.send(chatID, "Unknown engine. Available: "+strings.Join(r.Tutors.Names(), " | "))
		return
	}
	r.sessions.setEngine(chatID, t.Engine().Name())
	r.send(chatID, fmt.Sprintf("✅ Engine: %s (%s).", t.Engine().Name(), t.Engine().GetModel()))
}

func (r *Router) answer(ctx context.Context, chatID int64, question string) {
	t, err := r.Tutors.Get(r.sessions.engine(chatID))
	if err != nil {
		r.SendError(chatID, err)
		return
	}

	_, _ = r.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	ans, err := t.Ask(ctx, question)
	if err != nil {
		r.logger().Error("ask failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.SendError(chatID, err)
		return
	}
	r.SendAnswer(chatID, ans.Text)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// SendAnswer cuts long answers to fit a single Telegram message.
func (r *Router) SendAnswer(chatID int64, text string) {
	if rs := []rune(text); len(rs) > maxMessageLen {
		text = string(rs[:maxMessageLen]) + "…"
	}
	r.send(chatID, text)
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Sorry, something went wrong: %v", err))
}

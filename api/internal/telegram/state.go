package telegram

import "sync"

// sessions remembers the engine each chat picked with /engine.
type sessions struct {
	m sync.Map // chatID -> engine name
}

func (s *sessions) engine(chatID int64) string {
	if v, ok := s.m.Load(chatID); ok {
		if name, _ := v.(string); name != "" {
			return name
		}
	}
	return ""
}

func (s *sessions) setEngine(chatID int64, name string) { s.m.Store(chatID, name) }

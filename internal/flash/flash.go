// Package flash carrega mensagens transitórias pela sessão, exibidas uma
// única vez na próxima página renderizada.
package flash

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type Message struct {
	Category string // success, danger, warning, info
	Text     string
}

func Add(c *gin.Context, category, text string) {
	sess := sessions.Default(c)
	sess.AddFlash(category + "|" + text)
	_ = sess.Save()
}

// Pop devolve as mensagens pendentes e as consome.
func Pop(c *gin.Context) []Message {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save()
	}

	msgs := make([]Message, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		category, text, found := strings.Cut(s, "|")
		if !found {
			category, text = "info", s
		}
		msgs = append(msgs, Message{Category: category, Text: text})
	}
	return msgs
}

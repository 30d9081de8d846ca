package locale

import (
	"errors"
	"fmt"
)

// MessageID names a user-facing message.
type MessageID int

const (
	ErrorPostingComment MessageID = iota
	CommentPostedAsDraft
)

// ErrUnknownMessage is returned for message IDs without a table entry.
var ErrUnknownMessage = errors.New("locale: unknown message")

var messages = map[Language]map[MessageID]string{
	English: {
		ErrorPostingComment:  "There was an error while submitting the comment.",
		CommentPostedAsDraft: "Your comment was submitted and will become visible when it is approved.",
	},
	Spanish: {
		ErrorPostingComment:  "Hubo un error enviando el comentario.",
		CommentPostedAsDraft: "Se ha recibido tu comentario y será publicado cuando se apruebe.",
	},
	Galician: {
		ErrorPostingComment:  "Houbo un erro ao enviar o comentario.",
		CommentPostedAsDraft: "Recibiuse o teu comentario e vai ser publicado cando se aprobe.",
	},
}

// LookupMessage returns the message for id in lang, falling back to English.
func LookupMessage(lang Language, id MessageID) (string, error) {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[id]; ok {
			return msg, nil
		}
	}
	if msg, ok := messages[English][id]; ok {
		return msg, nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownMessage, id)
}

// Message is LookupMessage without the error; unknown IDs yield "".
func Message(lang Language, id MessageID) string {
	msg, _ := LookupMessage(lang, id)
	return msg
}

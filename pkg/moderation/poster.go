package moderation

import (
	"strings"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
)

const (
	AnonymousName = "Anonymous"
	UnknownPoster = "unknown"
)

type PosterKind int

const (
	PrivatePoster PosterKind = iota
	PublicPoster
)

// Poster is what a super-moderator learns about who wrote a message.
type Poster struct {
	Name    string `json:"name,omitempty"`
	Gmail   string `json:"gmail,omitempty"`
	Display string `json:"display"`
}

func newPoster(name string, gmail string) *Poster {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, AnonymousName) {
		name = ""
	}

	poster := &Poster{Name: name, Gmail: gmail, Display: UnknownPoster}
	switch {
	case gmail != "":
		poster.Display = gmail
	case name != "":
		poster.Display = name
	}
	return poster
}

// RevealPoster returns the identity behind a message. Only a super-moderator
// may call it.
func (s *Service) RevealPoster(caller *models.AdminAccount, kind PosterKind, id uint) (*Poster, error) {
	if caller == nil || !caller.IsSuperModerator {
		return nil, apperror.Permission("Only the super-moderator can reveal posters")
	}

	if kind == PublicPoster {
		message, err := s.repos.Messages.GetPublic(id)
		if err != nil {
			return nil, err
		}
		name := message.Name
		if message.PosterUsername != "" {
			name = message.PosterUsername
		}
		return newPoster(name, message.PosterGmail), nil
	}

	message, err := s.repos.Messages.GetMessage(id)
	if err != nil {
		return nil, err
	}
	return newPoster(message.Name, ""), nil
}

// Package archive takes point-in-time snapshots of both message feeds and
// stores them in an object store bucket.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/sirupsen/logrus"
)

const (
	ContentType = "application/json"
	Prefix      = "feeds/"
)

type PublicEntry struct {
	models.PublicMessage
	PosterUsername string           `json:"posterUsername,omitempty"`
	PosterGmail    string           `json:"posterGmail,omitempty"`
	Reactions      map[string]int64 `json:"reactions"`
	Comments       []models.Comment `json:"comments"`
}

type Snapshot struct {
	TakenAt        time.Time        `json:"taken_at"`
	Messages       []models.Message `json:"messages"`
	PublicMessages []PublicEntry    `json:"public_messages"`
}

// Uploader is the part of the object store a snapshot needs.
type Uploader interface {
	SaveToBucket(ctx context.Context, bucket string, name string, data []byte, contentType string) error
}

// Build reads every message of both feeds. Private messages keep the pinned
// first order of the moderation listing; public ones are newest first.
func Build(repos *repositories.Repositories, takenAt time.Time) (*Snapshot, error) {
	messages, err := repos.Messages.ListMessages(repositories.MessageFilter{})
	if err != nil {
		return nil, err
	}

	public, err := repos.Messages.ListPublic(repositories.MessageFilter{})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(public))
	for _, m := range public {
		ids = append(ids, m.ID)
	}
	reactions := map[uint]map[string]int64{}
	if len(ids) > 0 {
		if reactions, err = repos.Messages.ReactionCounts(ids); err != nil {
			return nil, err
		}
	}

	entries := make([]PublicEntry, 0, len(public))
	for _, m := range public {
		comments, err := repos.Messages.ListComments(m.ID)
		if err != nil {
			return nil, err
		}

		counts := reactions[m.ID]
		if counts == nil {
			counts = map[string]int64{}
		}
		entries = append(entries, PublicEntry{
			PublicMessage:  m,
			PosterUsername: m.PosterUsername,
			PosterGmail:    m.PosterGmail,
			Reactions:      counts,
			Comments:       comments,
		})
	}

	return &Snapshot{
		TakenAt:        takenAt.UTC(),
		Messages:       messages,
		PublicMessages: entries,
	}, nil
}

func (s *Snapshot) ObjectName() string {
	return fmt.Sprintf("%s%s.json", Prefix, s.TakenAt.Format("20060102T150405Z"))
}

func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Upload stores the snapshot in bucket and returns the object name.
func Upload(ctx context.Context, store Uploader, bucket string, s *Snapshot) (string, error) {
	data, err := s.Encode()
	if err != nil {
		return "", err
	}

	name := s.ObjectName()
	if err := store.SaveToBucket(ctx, bucket, name, data, ContentType); err != nil {
		return "", err
	}

	logrus.Infof("Archived %d messages and %d public messages to %s/%s",
		len(s.Messages), len(s.PublicMessages), bucket, name)
	return name, nil
}

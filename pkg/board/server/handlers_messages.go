package server

import (
	"net/http"
	"strconv"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/board/requests"
	"github.com/freetocompute/mindboard/pkg/board/responses"
	"github.com/freetocompute/mindboard/pkg/feed"
	"github.com/freetocompute/mindboard/pkg/middleware"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/moderation"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// messageFilter reads the listing query parameters shared by both feeds.
func messageFilter(c *gin.Context) (repositories.MessageFilter, error) {
	filter := repositories.MessageFilter{
		Mood:   c.Query("mood"),
		Search: c.Query("q"),
	}

	switch c.DefaultQuery("sort", "newest") {
	case "newest":
	case "oldest":
		filter.Oldest = true
	default:
		return filter, apperror.Validation("sort must be newest or oldest")
	}

	if raw := c.Query("pinned"); raw != "" {
		pinned, valid := models.ParseFlag(raw)
		if !valid {
			return filter, apperror.Validation("Invalid pinned filter")
		}
		filter.Pinned = &pinned
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return filter, apperror.Validation("limit must be a positive number")
		}
		filter.Limit = limit
	}

	return filter, nil
}

func (s *Server) postMessage(c *gin.Context) {
	var req requests.PostMessage
	if !bind(c, &req) {
		return
	}

	message, err := s.feed.PostPrivate(req.Message, req.Name, req.Mood)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &responses.Created{Success: true, ID: message.ID})
}

func (s *Server) listMessages(c *gin.Context) {
	filter, err := messageFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	messages, err := s.moderation.ListMessages(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) deleteMessage(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := s.moderation.DeleteMessage(id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Message deleted")
}

func (s *Server) pinMessage(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req requests.Pin
	if !bind(c, &req) {
		return
	}
	if req.IsPinned == nil {
		respondError(c, apperror.Validation("isPinned is required"))
		return
	}

	if err := s.moderation.TogglePin(id, *req.IsPinned); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "")
}

func (s *Server) revealPoster(c *gin.Context, kind moderation.PosterKind) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	poster, err := s.moderation.RevealPoster(middleware.GetAdmin(c), kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &responses.Poster{
		Success: true,
		Name:    poster.Name,
		Gmail:   poster.Gmail,
		Display: poster.Display,
	})
}

func (s *Server) messagePoster(c *gin.Context) {
	s.revealPoster(c, moderation.PrivatePoster)
}

func (s *Server) publicMessagePoster(c *gin.Context) {
	s.revealPoster(c, moderation.PublicPoster)
}

func (s *Server) postPublicMessage(c *gin.Context) {
	var req requests.PostMessage
	if !bind(c, &req) {
		return
	}

	message, err := s.feed.PostPublic(req.Message, req.Name, req.Mood, middleware.GetUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &responses.Created{Success: true, ID: message.ID})
}

func (s *Server) listPublicMessages(c *gin.Context) {
	filter, err := messageFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	admin := middleware.GetAdmin(c)
	entries, err := s.feed.ListPublic(filter, admin != nil && admin.IsSuperModerator)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) deletePublicMessage(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := s.moderation.DeletePublicMessage(id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Public message deleted")
}

// reactor identifies who is reacting: the signed-in user, or an anonymous
// visitor tracked by a long-lived cookie issued on first use.
func (s *Server) reactor(c *gin.Context) string {
	if user := middleware.GetUser(c); user != nil {
		return feed.UserReactor(user.ID)
	}

	visitor, err := c.Cookie(s.opts.VisitorCookie)
	if err == nil {
		_, err = uuid.Parse(visitor)
	}
	if err != nil {
		visitor = uuid.NewString()
		s.setCookie(c, s.opts.VisitorCookie, visitor, visitorCookieMaxAge)
	}
	return feed.VisitorReactor(visitor)
}

func (s *Server) react(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req requests.React
	if !bind(c, &req) {
		return
	}

	summary, err := s.feed.React(id, s.reactor(c), req.Type, req.Remove)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &responses.Reactions{
		Success:   true,
		Counts:    summary.Counts,
		Reactions: summary.Reactions,
	})
}

func (s *Server) listComments(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	comments, err := s.feed.ListComments(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) addComment(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	var req requests.Comment
	if !bind(c, &req) {
		return
	}

	comment, err := s.feed.AddComment(id, req.Comment, req.Anonymous, middleware.GetUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

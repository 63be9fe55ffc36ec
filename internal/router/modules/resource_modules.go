package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/dream-journal-api/internal/interface/http"
)

type StoryModule struct {
	Handler *handlers.StoryHandler
	Guard   Guard
}

func (m *StoryModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Group(rg, "/stories")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/search", m.Handler.Search)
	g.GET("/:storyId", m.Handler.Get)
	g.PATCH("/:storyId", m.Handler.Update)
	g.DELETE("/:storyId", m.Handler.Delete)
}

type GameModule struct {
	Handler *handlers.GameHandler
	Guard   Guard
}

func (m *GameModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Group(rg, "/games")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/:gameId", m.Handler.Get)
	g.PATCH("/:gameId", m.Handler.Update)
	g.DELETE("/:gameId", m.Handler.Delete)
}

type SleepSessionModule struct {
	Handler *handlers.SleepSessionHandler
	Guard   Guard
}

func (m *SleepSessionModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Group(rg, "/sleep-sessions")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/latest", m.Handler.Latest)
	g.GET("/:sessionId", m.Handler.Get)
	g.PATCH("/:sessionId", m.Handler.Update)
	g.DELETE("/:sessionId", m.Handler.Delete)
}

type JournalEntryModule struct {
	Handler *handlers.JournalEntryHandler
	Guard   Guard
}

func (m *JournalEntryModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Group(rg, "/journal-entries")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/:journalId", m.Handler.Get)
	g.PATCH("/:journalId", m.Handler.Update)
	g.DELETE("/:journalId", m.Handler.Delete)
}

type GameResultModule struct {
	Handler *handlers.GameResultHandler
	Guard   Guard
}

func (m *GameResultModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Group(rg, "/game-results")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/game/:gameId", m.Handler.ListByGame)
	g.GET("/:resultId", m.Handler.Get)
	g.PATCH("/:resultId", m.Handler.Update)
	g.DELETE("/:resultId", m.Handler.Delete)
}

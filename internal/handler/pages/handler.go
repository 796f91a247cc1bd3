package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/playmate/backend/internal/model/persona"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
	pagesvc "github.com/zhouzirui/playmate/backend/internal/service/pages"
	"github.com/zhouzirui/playmate/backend/pkg/utils"
)

// Handler 导航目录的HTTP处理器
type Handler struct {
	companion persona.Persona
}

// New 创建导航处理器
func New(companion persona.Persona) *Handler {
	return &Handler{companion: companion}
}

// RegisterRoutes 注册导航相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/pages", h.handleListPages)
}

// PageInfo names one page.
type PageInfo struct {
	ID    session.Page `json:"id"`
	Title string       `json:"title"`
}

// Catalogue is everything a client needs to draw navigation.
type Catalogue struct {
	Pages     []PageInfo          `json:"pages"`
	Sidebar   []pagesvc.NavButton `json:"sidebar"`
	Menu      []pagesvc.NavButton `json:"menu"`
	Companion persona.Persona     `json:"companion"`
}

// handleListPages 列出所有页面与导航按钮
func (h *Handler) handleListPages(w http.ResponseWriter, r *http.Request) {
	all := session.Pages()
	infos := make([]PageInfo, 0, len(all))
	for _, p := range all {
		infos = append(infos, PageInfo{ID: p, Title: pagesvc.Title(p)})
	}

	utils.RespondJSON(w, http.StatusOK, Catalogue{
		Pages:     infos,
		Sidebar:   pagesvc.Sidebar(),
		Menu:      pagesvc.Menu(),
		Companion: h.companion,
	})
}

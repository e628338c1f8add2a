package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterSurveyRoutes 注册勘测快照与文档生成路由
func (r *Router) RegisterSurveyRoutes(h *SurveyHandler) {
	// /proposal/api/v1/surveys/{id}
	// /proposal/api/v1/surveys/{id}/documents/{bom|rfp|proposal}
	r.Handle("/proposal/api/v1/surveys/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/proposal/api/v1/surveys/")
		if rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		parts := strings.Split(rest, "/")

		switch {
		case len(parts) == 1:
			switch req.Method {
			case http.MethodGet:
				h.GetSurvey(w, req, parts[0])
			case http.MethodPut:
				h.SaveSurvey(w, req, parts[0])
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		case len(parts) == 3 && parts[1] == "documents":
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.GenerateDocument(w, req, parts[0], parts[2])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

package handlers

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/xconsult/internal/services"
	"github.com/justsurfingit/xconsult/internal/web"
)

// Deps are the services the router wires into handlers.
type Deps struct {
	Catalog     *services.CatalogService
	Sessions    *services.SessionStore
	Drafts      *services.DraftService
	Submissions *services.SubmissionService
	Toasts      *services.ToastService
	CORSOrigins []string

	// MaxUploadBytes caps post-job request bodies, attachments included.
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 32 << 20

func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	config := cors.DefaultConfig()
	if len(d.CORSOrigins) == 0 || (len(d.CORSOrigins) == 1 && d.CORSOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.CORSOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	maxUpload := d.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	r := gin.Default()
	r.MaxMultipartMemory = maxUpload
	r.Use(cors.New(config))
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	home := NewHomeHandler(d.Catalog)
	jobs := NewJobHandler(d.Catalog, d.Drafts, d.Submissions, d.Toasts)
	catalog := NewCatalogHandler(d.Catalog)

	pages := r.Group("/", Sessions(d.Sessions))
	{
		pages.GET("/", home.Index)
		pages.GET("/select", home.Select)
		pages.GET("/login", ComingSoon("Login"))
		pages.GET("/register", ComingSoon("Register"))

		pages.GET("/post-job", jobs.Show)
	}

	form := pages.Group("/post-job", jobs.LimitBody(maxUpload))
	{
		form.POST("", jobs.Submit)
		form.POST("/fields", jobs.SaveFields)
		form.POST("/preview", jobs.TogglePreview)
		form.POST("/draft", jobs.SaveDraft)
		form.POST("/skills", jobs.AddSkill)
		form.POST("/skills/:index/delete", jobs.RemoveSkill)
		form.POST("/vendors", jobs.AddVendor)
		form.POST("/vendors/:index/delete", jobs.RemoveVendor)
		form.POST("/attachments", jobs.UploadAttachments)
		form.POST("/attachments/:index/delete", jobs.RemoveAttachment)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)
		api.GET("/services", catalog.ListServices)
		api.GET("/services/search", catalog.SearchServices)
		api.GET("/services/select", catalog.SelectService)
	}

	return r, nil
}

package dtos

import "github.com/justsurfingit/xconsult/internal/models"

// JobFieldsRequest carries the scalar form fields. Every post-job action
// submits it so typed values survive the round trip.
type JobFieldsRequest struct {
	Title        string `form:"title" json:"title"`
	Service      string `form:"service" json:"service"`
	Budget       string `form:"budget" json:"budget"`
	Duration     string `form:"duration" json:"duration"`
	Description  string `form:"description" json:"description"`
	Requirements string `form:"requirements" json:"requirements"`
	Location     string `form:"location" json:"location"`
	Deadline     string `form:"deadline" json:"deadline"`
}

func (r *JobFieldsRequest) Apply(d *models.JobDraft) {
	d.Title = r.Title
	d.Service = r.Service
	d.Budget = r.Budget
	d.Duration = r.Duration
	d.Description = r.Description
	d.Requirements = r.Requirements
	d.Location = r.Location
	d.Deadline = r.Deadline
}

// JobPostRequest is the submit payload; all fields are mandatory.
type JobPostRequest struct {
	Title        string `form:"title" json:"title" binding:"required"`
	Service      string `form:"service" json:"service" binding:"required"`
	Budget       string `form:"budget" json:"budget" binding:"required"`
	Duration     string `form:"duration" json:"duration" binding:"required"`
	Description  string `form:"description" json:"description" binding:"required"`
	Requirements string `form:"requirements" json:"requirements" binding:"required"`
	Location     string `form:"location" json:"location" binding:"required"`
	Deadline     string `form:"deadline" json:"deadline" binding:"required"`
}

func (r *JobPostRequest) Fields() JobFieldsRequest {
	return JobFieldsRequest{
		Title:        r.Title,
		Service:      r.Service,
		Budget:       r.Budget,
		Duration:     r.Duration,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		Deadline:     r.Deadline,
	}
}

type SkillRequest struct {
	Skill string `form:"new_skill" json:"skill"`
}

type VendorRequest struct {
	Vendor string `form:"new_vendor" json:"vendor"`
}

// IndexParam binds the :index path segment of the remove actions.
type IndexParam struct {
	Index int `uri:"index" binding:"min=0"`
}

type SearchRequest struct {
	Query string `form:"q" json:"q"`
}

type CatalogRequest struct {
	All bool `form:"all" json:"all"`
}

type SelectRequest struct {
	Service string `form:"service" json:"service" binding:"required"`
}

package onboarding

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/digitalagency-id/agency_be/internal/models"
)

// Wizard step order. Navigation never validates intermediate steps.
const (
	StepPersonal = iota
	StepBusiness
	StepContact
	StepBranches
	StepSocial
	StepSWOT
	StepCompetitors
	StepSegments

	StepCount
)

type Personal struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type BusinessProfile struct {
	BusinessName      string `json:"business_name"`
	Category          string `json:"category"` // fixed value or "other"
	CategoryOther     string `json:"category_other"`
	Description       string `json:"description"`
	MainOfficeAddress string `json:"main_office_address"`
	EstablishedYear   string `json:"established_year"`
}

type BusinessContact struct {
	BusinessPhone    string `json:"business_phone"`
	BusinessWhatsApp string `json:"business_whatsapp"`
	BusinessEmail    string `json:"business_email"`
	Website          string `json:"website"`
}

type BranchForm struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type SocialLinks struct {
	Business []SocialLink `json:"business"` // the 4 fixed platforms
	Custom   []SocialLink `json:"custom"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type CompetitorForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Facebook    string `json:"facebook"`
	Instagram   string `json:"instagram"`
	TikTok      string `json:"tiktok"`
	Twitter     string `json:"twitter"`
	SWOT        SWOT   `json:"swot"`
}

type SegmentForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AgeRange    string `json:"age_range"`
	Gender      string `json:"gender"`
	Interests   string `json:"interests"`
	IncomeLevel string `json:"income_level"`
}

// Draft is the onboarding aggregate assembled across all wizard steps.
// Each list step carries exactly one optional *Draft sub-form holding the
// typed-but-not-yet-added entry, so navigating away does not lose it.
type Draft struct {
	Personal Personal        `json:"personal"`
	Business BusinessProfile `json:"business"`
	Contact  BusinessContact `json:"contact"`

	Branches    []BranchForm `json:"branches"`
	BranchDraft *BranchForm  `json:"branch_draft,omitempty"`

	Social      SocialLinks `json:"social"`
	SocialDraft *SocialLink `json:"social_draft,omitempty"`

	SWOT SWOT `json:"swot"`

	Competitors     []CompetitorForm `json:"competitors"`
	CompetitorDraft *CompetitorForm  `json:"competitor_draft,omitempty"`

	Segments     []SegmentForm `json:"segments"`
	SegmentDraft *SegmentForm  `json:"segment_draft,omitempty"`
}

// StepData is a partial update carried by a navigation action. Nil sections
// leave the aggregate untouched; merge is shallow per top-level key.
type StepData struct {
	Personal *Personal        `json:"personal,omitempty"`
	Business *BusinessProfile `json:"business,omitempty"`
	Contact  *BusinessContact `json:"contact,omitempty"`

	Branches    []BranchForm `json:"branches,omitempty"`
	BranchDraft *BranchForm  `json:"branch_draft,omitempty"`

	Social      *SocialLinks `json:"social,omitempty"`
	SocialDraft *SocialLink  `json:"social_draft,omitempty"`

	SWOT *SWOT `json:"swot,omitempty"`

	Competitors     []CompetitorForm `json:"competitors,omitempty"`
	CompetitorDraft *CompetitorForm  `json:"competitor_draft,omitempty"`

	Segments     []SegmentForm `json:"segments,omitempty"`
	SegmentDraft *SegmentForm  `json:"segment_draft,omitempty"`
}

func (d *Draft) merge(data *StepData) {
	if data == nil {
		return
	}
	if data.Personal != nil {
		d.Personal = *data.Personal
	}
	if data.Business != nil {
		d.Business = *data.Business
	}
	if data.Contact != nil {
		d.Contact = *data.Contact
	}
	if data.Branches != nil {
		d.Branches = data.Branches
	}
	if data.BranchDraft != nil {
		d.BranchDraft = data.BranchDraft
	}
	if data.Social != nil {
		d.Social = *data.Social
	}
	if data.SocialDraft != nil {
		d.SocialDraft = data.SocialDraft
	}
	if data.SWOT != nil {
		d.SWOT = *data.SWOT
	}
	if data.Competitors != nil {
		d.Competitors = data.Competitors
	}
	if data.CompetitorDraft != nil {
		d.CompetitorDraft = data.CompetitorDraft
	}
	if data.Segments != nil {
		d.Segments = data.Segments
	}
	if data.SegmentDraft != nil {
		d.SegmentDraft = data.SegmentDraft
	}
}

// sweepDrafts appends every typed-but-not-added sub-form that carries its
// required content to its list, then clears the sub-form. Runs at the final
// step so the user who forgot to press "Add" loses nothing.
func (d *Draft) sweepDrafts() {
	if d.BranchDraft != nil {
		if d.BranchDraft.Name != "" {
			d.Branches = append(d.Branches, *d.BranchDraft)
		}
		d.BranchDraft = nil
	}
	if d.SocialDraft != nil {
		if d.SocialDraft.URL != "" {
			d.Social.Custom = append(d.Social.Custom, *d.SocialDraft)
		}
		d.SocialDraft = nil
	}
	if d.CompetitorDraft != nil {
		if d.CompetitorDraft.Name != "" {
			d.Competitors = append(d.Competitors, *d.CompetitorDraft)
		}
		d.CompetitorDraft = nil
	}
	if d.SegmentDraft != nil {
		if d.SegmentDraft.Name != "" {
			d.Segments = append(d.Segments, *d.SegmentDraft)
		}
		d.SegmentDraft = nil
	}
}

// toClient maps the aggregate (minus transient sub-forms) onto the primary
// entity. Sub-entity lists are written separately by the bulk submit.
func (d *Draft) toClient(id uuid.UUID) models.Client {
	social, _ := json.Marshal(d.Social)
	swot, _ := json.Marshal(d.SWOT)

	return models.Client{
		ID:                id,
		FullName:          d.Personal.FullName,
		Email:             d.Personal.Email,
		Phone:             d.Personal.Phone,
		Position:          d.Personal.Position,
		BusinessName:      d.Business.BusinessName,
		Category:          models.BusinessCategory(d.Business.Category),
		CategoryOther:     d.Business.CategoryOther,
		Description:       d.Business.Description,
		MainOfficeAddress: d.Business.MainOfficeAddress,
		EstablishedYear:   d.Business.EstablishedYear,
		BusinessPhone:     d.Contact.BusinessPhone,
		BusinessWhatsApp:  d.Contact.BusinessWhatsApp,
		BusinessEmail:     d.Contact.BusinessEmail,
		Website:           d.Contact.Website,
		SocialLinks:       datatypes.JSON(social),
		SWOT:              datatypes.JSON(swot),
	}
}

func (d *Draft) toBranches() []models.Branch {
	out := make([]models.Branch, 0, len(d.Branches))
	for _, b := range d.Branches {
		out = append(out, models.Branch{
			Name:    b.Name,
			City:    b.City,
			Address: b.Address,
			Phone:   b.Phone,
		})
	}
	return out
}

func (d *Draft) toCompetitors() []models.Competitor {
	out := make([]models.Competitor, 0, len(d.Competitors))
	for _, cp := range d.Competitors {
		swot, _ := json.Marshal(cp.SWOT)
		out = append(out, models.Competitor{
			Name:        cp.Name,
			Description: cp.Description,
			Website:     cp.Website,
			Facebook:    cp.Facebook,
			Instagram:   cp.Instagram,
			TikTok:      cp.TikTok,
			Twitter:     cp.Twitter,
			SWOT:        datatypes.JSON(swot),
		})
	}
	return out
}

func (d *Draft) toSegments() []models.Segment {
	out := make([]models.Segment, 0, len(d.Segments))
	for _, s := range d.Segments {
		out = append(out, models.Segment{
			Name:        s.Name,
			Description: s.Description,
			AgeRange:    s.AgeRange,
			Gender:      s.Gender,
			Interests:   s.Interests,
			IncomeLevel: s.IncomeLevel,
		})
	}
	return out
}

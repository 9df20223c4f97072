package testutil

import (
	"time"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

// MemberDraftBuilder provides a fluent interface for building member form input.
type MemberDraftBuilder struct {
	draft model.MemberDraft
}

// NewMemberDraft starts from a draft that passes validation.
func NewMemberDraft() *MemberDraftBuilder {
	return &MemberDraftBuilder{draft: model.MemberDraft{
		FullName:           "Thandi Mokoena",
		DateOfBirth:        "1985-03-14",
		Gender:             model.GenderFemale,
		ResidentialAddress: "12 Church St",
		Society:            string(model.SocietySecunda),
	}}
}

// WithName sets the full name.
func (b *MemberDraftBuilder) WithName(name string) *MemberDraftBuilder {
	b.draft.FullName = name
	return b
}

// WithSociety sets the society key.
func (b *MemberDraftBuilder) WithSociety(s model.Society) *MemberDraftBuilder {
	b.draft.Society = string(s)
	return b
}

// WithGender sets the gender.
func (b *MemberDraftBuilder) WithGender(gender string) *MemberDraftBuilder {
	b.draft.Gender = gender
	return b
}

// WithDateOfBirth sets the raw date of birth.
func (b *MemberDraftBuilder) WithDateOfBirth(dob string) *MemberDraftBuilder {
	b.draft.DateOfBirth = dob
	return b
}

// WithEmail sets the email address.
func (b *MemberDraftBuilder) WithEmail(email string) *MemberDraftBuilder {
	b.draft.EmailAddress = email
	return b
}

// WithOccupation sets the occupation.
func (b *MemberDraftBuilder) WithOccupation(occupation string) *MemberDraftBuilder {
	b.draft.Occupation = occupation
	return b
}

// Build returns a copy of the draft.
func (b *MemberDraftBuilder) Build() model.MemberDraft {
	return b.draft
}

// FinanceDraftBuilder provides a fluent interface for building financial entry input.
type FinanceDraftBuilder struct {
	draft model.FinanceDraft
}

// NewFinanceDraft starts from a KMT entry dated at TestTime with no amounts.
func NewFinanceDraft() *FinanceDraftBuilder {
	d := model.NewFinanceDraft(TestTime())
	d.Society = string(model.SocietyKMT)
	return &FinanceDraftBuilder{draft: d}
}

// WithSociety sets the society key.
func (b *FinanceDraftBuilder) WithSociety(s model.Society) *FinanceDraftBuilder {
	b.draft.Society = string(s)
	return b
}

// OnDate sets the entry date.
func (b *FinanceDraftBuilder) OnDate(t time.Time) *FinanceDraftBuilder {
	b.draft.Date = t.Format(model.DateLayout)
	return b
}

// WithSundayCollection sets the raw Sunday collection amount.
func (b *FinanceDraftBuilder) WithSundayCollection(v string) *FinanceDraftBuilder {
	b.draft.SundayCollection = v
	return b
}

// WithPledges sets the raw pledges amount.
func (b *FinanceDraftBuilder) WithPledges(v string) *FinanceDraftBuilder {
	b.draft.Pledges = v
	return b
}

// WithSpecialEffort sets the raw special effort amount.
func (b *FinanceDraftBuilder) WithSpecialEffort(v string) *FinanceDraftBuilder {
	b.draft.SpecialEffort = v
	return b
}

// WithEventsCollection sets the raw circuit events amount.
func (b *FinanceDraftBuilder) WithEventsCollection(v string) *FinanceDraftBuilder {
	b.draft.CircuitEventsCollection = v
	return b
}

// Build returns a copy of the draft.
func (b *FinanceDraftBuilder) Build() model.FinanceDraft {
	return b.draft
}

// AnnouncementDraftBuilder provides a fluent interface for building announcement input.
type AnnouncementDraftBuilder struct {
	draft model.AnnouncementDraft
}

// NewAnnouncementDraft starts from a plain announcement.
func NewAnnouncementDraft(title, content string) *AnnouncementDraftBuilder {
	return &AnnouncementDraftBuilder{draft: model.AnnouncementDraft{Title: title, Content: content}}
}

// AsFuneral fills in the funeral notice fields.
func (b *AnnouncementDraftBuilder) AsFuneral(deceased string, died time.Time) *AnnouncementDraftBuilder {
	b.draft.DeceasedName = deceased
	b.draft.DeathDate = died.Format(model.DateLayout)
	b.draft.FinancialStatus = model.FinancialStatusGood
	return b
}

// WithBurial sets the burial location.
func (b *AnnouncementDraftBuilder) WithBurial(location string) *AnnouncementDraftBuilder {
	b.draft.BurialLocation = location
	return b
}

// WithClassLeader sets the class leader name.
func (b *AnnouncementDraftBuilder) WithClassLeader(name string) *AnnouncementDraftBuilder {
	b.draft.ClassLeaderName = name
	return b
}

// Build returns a copy of the draft.
func (b *AnnouncementDraftBuilder) Build() model.AnnouncementDraft {
	return b.draft
}

// Common draft patterns

// FuneralNotice returns a complete funeral announcement.
func FuneralNotice() model.AnnouncementDraft {
	return NewAnnouncementDraft("Funeral notice", "Service at Secunda society.").
		AsFuneral("Baba Mthembu", TestTime().AddDate(0, 0, -3)).
		WithBurial("Secunda cemetery").
		WithClassLeader("Mrs Dlamini").
		Build()
}

// SundayTakings returns a valid entry totalling R150.00.
func SundayTakings() model.FinanceDraft {
	return NewFinanceDraft().WithSundayCollection("100").WithPledges("50").Build()
}

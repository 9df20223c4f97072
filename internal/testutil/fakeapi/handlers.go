package fakeapi

import (
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	acct, ok := s.users[in.Username]
	if !ok || acct.password != in.Password {
		s.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token := s.issueToken(in.Username)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         acct.profile,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in model.RegisterUserRequest
	if !decode(w, r, &in) {
		return
	}
	if fields := missing("username", in.Username, "password", in.Password, "full_name", in.FullName, "role", string(in.Role)); len(fields) > 0 {
		writeMissing(w, fields...)
		return
	}
	s.mu.Lock()
	_, exists := s.users[in.Username]
	s.mu.Unlock()
	if exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	profile := domainauth.UserProfile{FullName: in.FullName, Role: in.Role}
	if in.Society != nil {
		v := string(*in.Society)
		profile.Society = &v
	}
	if in.Organization != nil {
		v := string(*in.Organization)
		profile.Organization = &v
	}
	profile = s.AddUser(in.Username, in.Password, profile)
	writeJSON(w, http.StatusOK, model.RegisterResult{Message: "User created successfully", UserID: profile.ID})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, user domainauth.UserProfile) {
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request, _ domainauth.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bySociety := map[model.Society]int{}
	for _, soc := range model.Societies() {
		bySociety[soc] = 0
	}
	for _, m := range s.members {
		bySociety[m.Society]++
	}
	recent := append([]model.FinancialEntry(nil), s.finances...)
	sortByTimeDesc(recent, func(e model.FinancialEntry) time.Time { return e.CreatedAt.Time })
	if len(recent) > 5 {
		recent = recent[:5]
	}
	writeJSON(w, http.StatusOK, model.DashboardStats{
		TotalMembers:       len(s.members),
		TotalSocieties:     len(model.Societies()),
		TotalOrganizations: len(model.Organizations()),
		MembersBySociety:   bySociety,
		RecentFinances:     recent,
	})
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request, _ domainauth.UserProfile) {
	society := r.URL.Query().Get("society")
	search := strings.ToLower(r.URL.Query().Get("search"))

	s.mu.Lock()
	out := make([]model.Member, 0, len(s.members))
	for _, m := range s.members {
		if society != "" && string(m.Society) != society {
			continue
		}
		if search != "" {
			email := ""
			if m.EmailAddress != nil {
				email = *m.EmailAddress
			}
			if !strings.Contains(strings.ToLower(m.FullName), search) && !strings.Contains(strings.ToLower(email), search) {
				continue
			}
		}
		out = append(out, m)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request, user domainauth.UserProfile) {
	var in model.CreateMemberRequest
	if !decode(w, r, &in) {
		return
	}
	dob := ""
	if !in.DateOfBirth.IsZero() {
		dob = "set"
	}
	if fields := missing("full_name", in.FullName, "date_of_birth", dob, "gender", in.Gender,
		"residential_address", in.ResidentialAddress, "society", string(in.Society)); len(fields) > 0 {
		writeMissing(w, fields...)
		return
	}
	if !in.Society.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, "value is not a valid enumeration member")
		return
	}

	s.mu.Lock()
	m := model.Member{
		ID:                 s.nextID("member"),
		FullName:           in.FullName,
		DateOfBirth:        in.DateOfBirth,
		Gender:             in.Gender,
		Title:              in.Title,
		ResidentialAddress: in.ResidentialAddress,
		EmailAddress:       in.EmailAddress,
		Occupation:         in.Occupation,
		Society:            in.Society,
		ClassAllocation:    in.ClassAllocation,
		CreatedAt:          model.NewTimestamp(s.now()),
		CreatedBy:          user.ID,
	}
	s.members = append(s.members, m)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleListFinances(w http.ResponseWriter, r *http.Request, _ domainauth.UserProfile) {
	q := r.URL.Query()
	society := q.Get("society")
	var start, end model.Timestamp
	var err error
	if v := q.Get("start_date"); v != "" {
		if start, err = model.ParseTimestamp(v); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid datetime format")
			return
		}
	}
	if v := q.Get("end_date"); v != "" {
		if end, err = model.ParseTimestamp(v); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid datetime format")
			return
		}
	}

	s.mu.Lock()
	out := make([]model.FinancialEntry, 0, len(s.finances))
	for _, e := range s.finances {
		if society != "" && string(e.Society) != society {
			continue
		}
		if !start.IsZero() && e.Date.Before(start.Time) {
			continue
		}
		if !end.IsZero() && e.Date.After(end.Time) {
			continue
		}
		out = append(out, e)
	}
	s.mu.Unlock()
	sortByTimeDesc(out, func(e model.FinancialEntry) time.Time { return e.Date.Time })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateFinance(w http.ResponseWriter, r *http.Request, user domainauth.UserProfile) {
	var in model.CreateFinancialEntryRequest
	if !decode(w, r, &in) {
		return
	}
	date := ""
	if !in.Date.IsZero() {
		date = "set"
	}
	if fields := missing("society", string(in.Society), "date", date); len(fields) > 0 {
		writeMissing(w, fields...)
		return
	}

	s.mu.Lock()
	e := model.FinancialEntry{
		ID:                      s.nextID("finance"),
		Society:                 in.Society,
		Date:                    in.Date,
		Pledges:                 in.Pledges,
		SpecialEffort:           in.SpecialEffort,
		SundayCollection:        in.SundayCollection,
		CircuitEventsCollection: in.CircuitEventsCollection,
		Total:                   in.Pledges + in.SpecialEffort + in.SundayCollection + in.CircuitEventsCollection,
		CreatedBy:               user.ID,
		CreatedAt:               model.NewTimestamp(s.now()),
	}
	s.finances = append(s.finances, e)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleListAnnouncements(w http.ResponseWriter, _ *http.Request, _ domainauth.UserProfile) {
	s.mu.Lock()
	out := append([]model.Announcement(nil), s.announcements...)
	s.mu.Unlock()
	sortByTimeDesc(out, func(a model.Announcement) time.Time { return a.CreatedAt.Time })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request, user domainauth.UserProfile) {
	var in model.CreateAnnouncementRequest
	if !decode(w, r, &in) {
		return
	}
	if fields := missing("title", in.Title, "content", in.Content); len(fields) > 0 {
		writeMissing(w, fields...)
		return
	}

	s.mu.Lock()
	a := model.Announcement{
		ID:               s.nextID("announcement"),
		Title:            in.Title,
		Content:          in.Content,
		DeceasedName:     in.DeceasedName,
		ClassLeaderName:  in.ClassLeaderName,
		DeathDate:        in.DeathDate,
		BurialLocation:   in.BurialLocation,
		FinancialStatus:  in.FinancialStatus,
		AttendanceRecord: in.AttendanceRecord,
		CreatedBy:        user.ID,
		CreatedAt:        model.NewTimestamp(s.now()),
	}
	s.announcements = append(s.announcements, a)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, user domainauth.UserProfile) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeMissing(w, "file", "category")
		return
	}
	category := r.FormValue("category")
	file, header, err := r.FormFile("file")
	if err != nil {
		writeMissing(w, "file")
		return
	}
	if category == "" {
		_ = file.Close()
		writeMissing(w, "category")
		return
	}
	defer file.Close()
	if _, err := io.Copy(io.Discard, file); err != nil {
		writeDetail(w, http.StatusBadRequest, "upload failed")
		return
	}

	s.mu.Lock()
	rec := model.FileRecord{
		ID:           s.nextID("file"),
		OriginalName: header.Filename,
		StoredName:   s.nextID("stored") + path.Ext(header.Filename),
		Category:     category,
		UploadedBy:   user.ID,
		UploadedAt:   model.NewTimestamp(s.now()),
	}
	s.files = append(s.files, rec)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, model.UploadResult{Message: "File uploaded successfully", FileID: rec.ID})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request, _ domainauth.UserProfile) {
	category := r.PathValue("category")
	s.mu.Lock()
	out := make([]model.FileRecord, 0)
	for _, f := range s.files {
		if f.Category == category {
			out = append(out, f)
		}
	}
	s.mu.Unlock()
	sortByTimeDesc(out, func(f model.FileRecord) time.Time { return f.UploadedAt.Time })
	writeJSON(w, http.StatusOK, out)
}

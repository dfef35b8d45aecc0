package service

import (
	"sort"
	"time"

	"hfrat-service/internal/model"
)

// In-memory repository fakes for exercising the services without a
// database.

var (
	_ model.FacilityRepository = (*memFacilityRepo)(nil)
	_ model.UserRepository     = (*memUserRepo)(nil)
	_ model.SettingRepository  = (*memSettingRepo)(nil)
	_ model.ReportRepository   = (*memReportRepo)(nil)
)

type memFacilityRepo struct {
	seq  uint
	byID map[uint]*model.Facility
}

func newMemFacilityRepo() *memFacilityRepo {
	return &memFacilityRepo{byID: map[uint]*model.Facility{}}
}

func (m *memFacilityRepo) findTriple(name, country, city string) *model.Facility {
	for _, f := range m.byID {
		if f.Name == name && f.Country == country && f.City == city {
			return f
		}
	}
	return nil
}

func (m *memFacilityRepo) Create(f *model.Facility) error {
	if m.findTriple(f.Name, f.Country, f.City) != nil {
		return model.ErrDuplicate
	}
	m.seq++
	f.ID = m.seq
	m.byID[f.ID] = f
	return nil
}

func (m *memFacilityRepo) GetByID(id uint) (*model.Facility, error) {
	if f, ok := m.byID[id]; ok {
		return f, nil
	}
	return nil, model.ErrNotFound
}

func (m *memFacilityRepo) GetOrCreate(name, country, city string) (*model.Facility, error) {
	if f := m.findTriple(name, country, city); f != nil {
		return f, nil
	}
	f := &model.Facility{Name: name, Country: country, City: city}
	if err := m.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (m *memFacilityRepo) List() ([]*model.Facility, error) {
	out := make([]*model.Facility, 0, len(m.byID))
	for _, f := range m.byID {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memFacilityRepo) Count() (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *memFacilityRepo) CountByCountry() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, f := range m.byID {
		counts[f.Country]++
	}
	return counts, nil
}

type memUserRepo struct {
	seq  uint
	byID map[uint]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uint]*model.User{}}
}

func (m *memUserRepo) Create(u *model.User) error {
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return model.ErrDuplicate
		}
	}
	m.seq++
	u.ID = m.seq
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(id uint) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, model.ErrNotFound
}

func (m *memUserRepo) GetByUsername(username string) (*model.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memUserRepo) List() ([]*model.User, error) {
	out := make([]*model.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memUserRepo) Update(u *model.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return model.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) Delete(id uint) error {
	if _, ok := m.byID[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUserRepo) Count() (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *memUserRepo) CountByRole() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, u := range m.byID {
		counts[u.Role]++
	}
	return counts, nil
}

type memSettingRepo struct {
	seq   uint
	byKey map[string]*model.SystemSetting
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{byKey: map[string]*model.SystemSetting{}}
}

func (m *memSettingRepo) Get(key string) (*model.SystemSetting, error) {
	if s, ok := m.byKey[key]; ok {
		return s, nil
	}
	return nil, model.ErrNotFound
}

func (m *memSettingRepo) List() ([]*model.SystemSetting, error) {
	out := make([]*model.SystemSetting, 0, len(m.byKey))
	for _, s := range m.byKey {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memSettingRepo) ListByType(settingType string) ([]*model.SystemSetting, error) {
	all, _ := m.List()
	out := []*model.SystemSetting{}
	for _, s := range all {
		if s.SettingType == settingType {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSettingRepo) Save(s *model.SystemSetting) error {
	if existing, ok := m.byKey[s.Key]; ok {
		s.ID = existing.ID
	} else {
		m.seq++
		s.ID = m.seq
	}
	m.byKey[s.Key] = s
	return nil
}

func (m *memSettingRepo) Delete(key string) error {
	if _, ok := m.byKey[key]; !ok {
		return model.ErrNotFound
	}
	delete(m.byKey, key)
	return nil
}

func (m *memSettingRepo) ClearUpdatedBy(userID uint) error {
	for _, s := range m.byKey {
		if s.UpdatedByID != nil && *s.UpdatedByID == userID {
			s.UpdatedByID = nil
		}
	}
	return nil
}

type memReportRepo struct {
	seq        uint
	hseq       uint
	byFacility map[uint]*model.ResourceReport
	history    []*model.ResourceReportHistory
	facilities *memFacilityRepo
}

func newMemReportRepo(facilities *memFacilityRepo) *memReportRepo {
	return &memReportRepo{byFacility: map[uint]*model.ResourceReport{}, facilities: facilities}
}

func (m *memReportRepo) Upsert(r *model.ResourceReport, h *model.ResourceReportHistory) error {
	if existing, ok := m.byFacility[r.FacilityID]; ok {
		r.ID = existing.ID
	} else {
		m.seq++
		r.ID = m.seq
	}
	m.byFacility[r.FacilityID] = r
	m.hseq++
	h.ID = m.hseq
	m.history = append(m.history, h)
	return nil
}

func (m *memReportRepo) GetByFacility(facilityID uint) (*model.ResourceReport, error) {
	if r, ok := m.byFacility[facilityID]; ok {
		return r, nil
	}
	return nil, model.ErrNotFound
}

func (m *memReportRepo) List() ([]*model.ResourceReport, error) {
	out := make([]*model.ResourceReport, 0, len(m.byFacility))
	for _, r := range m.byFacility {
		if m.facilities != nil {
			if f, ok := m.facilities.byID[r.FacilityID]; ok {
				r.Facility = f
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FacilityID < out[j].FacilityID })
	return out, nil
}

func (m *memReportRepo) HistorySince(facilityID uint, since time.Time) ([]*model.ResourceReportHistory, error) {
	out := []*model.ResourceReportHistory{}
	for _, h := range m.history {
		if h.FacilityID == facilityID && !h.CreatedAt.Before(since) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memReportRepo) Count() (int64, error) {
	return int64(len(m.byFacility)), nil
}

func (m *memReportRepo) CountHistory() (int64, error) {
	return int64(len(m.history)), nil
}

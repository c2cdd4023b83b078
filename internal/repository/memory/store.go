package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/repository"
)

// Store is an in-process implementation of repository.Store used for local runs
// (STORAGE_DRIVER=memory) and tests. Unique constraints match the Mongo indexes.
type Store struct {
	mu sync.RWMutex

	tanks     map[primitive.ObjectID]models.Tank
	recipes   map[primitive.ObjectID]models.RecipeStyle
	schedules map[primitive.ObjectID]models.ProductionSchedule
	alarms    map[primitive.ObjectID]models.Alarm
	status    *models.SystemStatus
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		tanks:     map[primitive.ObjectID]models.Tank{},
		recipes:   map[primitive.ObjectID]models.RecipeStyle{},
		schedules: map[primitive.ObjectID]models.ProductionSchedule{},
		alarms:    map[primitive.ObjectID]models.Alarm{},
	}
}

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

// ---- tanks ----

func (s *Store) CreateTank(_ context.Context, tank *models.Tank) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tank.ID.IsZero() {
		tank.ID = primitive.NewObjectID()
	}
	s.tanks[tank.ID] = *tank
	return nil
}

func (s *Store) GetTank(_ context.Context, id primitive.ObjectID) (models.Tank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tank, ok := s.tanks[id]
	if !ok {
		return models.Tank{}, repository.ErrNotFound
	}
	return tank, nil
}

func (s *Store) ListTanks(_ context.Context) ([]models.Tank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Tank, 0, len(s.tanks))
	for _, t := range s.tanks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateTank(_ context.Context, tank models.Tank) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tanks[tank.ID]; !ok {
		return repository.ErrNotFound
	}
	s.tanks[tank.ID] = tank
	return nil
}

func (s *Store) DeleteTank(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tanks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tanks, id)
	return nil
}

// ---- brew styles ----

func (s *Store) CreateRecipe(_ context.Context, recipe *models.RecipeStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recipeNameTaken(recipe.Name, primitive.NilObjectID) {
		return repository.ErrDuplicateKey
	}
	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	s.recipes[recipe.ID] = *recipe
	return nil
}

func (s *Store) GetRecipe(_ context.Context, id primitive.ObjectID) (models.RecipeStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return models.RecipeStyle{}, repository.ErrNotFound
	}
	return recipe, nil
}

func (s *Store) GetRecipeByName(_ context.Context, name string) (models.RecipeStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.Name == name {
			return r, nil
		}
	}
	return models.RecipeStyle{}, repository.ErrNotFound
}

func (s *Store) ListRecipes(_ context.Context) ([]models.RecipeStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RecipeStyle, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateRecipe(_ context.Context, recipe models.RecipeStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipe.ID]; !ok {
		return repository.ErrNotFound
	}
	if s.recipeNameTaken(recipe.Name, recipe.ID) {
		return repository.ErrDuplicateKey
	}
	s.recipes[recipe.ID] = recipe
	return nil
}

func (s *Store) DeleteRecipe(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

func (s *Store) recipeNameTaken(name string, except primitive.ObjectID) bool {
	for id, r := range s.recipes {
		if id != except && r.Name == name {
			return true
		}
	}
	return false
}

// ---- production schedules ----

func (s *Store) CreateSchedule(_ context.Context, schedule *models.ProductionSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batchTaken(schedule.BatchNumber, primitive.NilObjectID) {
		return repository.ErrDuplicateKey
	}
	if schedule.ID.IsZero() {
		schedule.ID = primitive.NewObjectID()
	}
	s.schedules[schedule.ID] = *schedule
	return nil
}

func (s *Store) GetSchedule(_ context.Context, id primitive.ObjectID) (models.ProductionSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[id]
	if !ok {
		return models.ProductionSchedule{}, repository.ErrNotFound
	}
	return schedule, nil
}

func (s *Store) ListSchedules(_ context.Context, filter models.ScheduleFilter) ([]models.ProductionSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProductionSchedule, 0, len(s.schedules))
	for _, sc := range s.schedules {
		if !filter.TankID.IsZero() && sc.TankID != filter.TankID {
			continue
		}
		if filter.Status != "" && sc.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && sc.EndDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && sc.StartDate.After(filter.To) {
			continue
		}
		out = append(out, sc)
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) FindOverlapping(_ context.Context, tankID primitive.ObjectID, start, end time.Time) ([]models.ProductionSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ProductionSchedule
	for _, sc := range s.schedules {
		if sc.TankID != tankID || sc.Status == models.ScheduleCancelled {
			continue
		}
		if sc.StartDate.After(end) || sc.EndDate.Before(start) {
			continue
		}
		out = append(out, sc)
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) UpdateSchedule(_ context.Context, schedule models.ProductionSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[schedule.ID]; !ok {
		return repository.ErrNotFound
	}
	if s.batchTaken(schedule.BatchNumber, schedule.ID) {
		return repository.ErrDuplicateKey
	}
	s.schedules[schedule.ID] = schedule
	return nil
}

func (s *Store) DeleteSchedule(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.schedules, id)
	return nil
}

func (s *Store) batchTaken(batch string, except primitive.ObjectID) bool {
	for id, sc := range s.schedules {
		if id != except && sc.BatchNumber == batch {
			return true
		}
	}
	return false
}

func sortByStart(list []models.ProductionSchedule) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].BatchNumber < list[j].BatchNumber
		}
		return list[i].StartDate.Before(list[j].StartDate)
	})
}

// ---- alarms ----

func (s *Store) CreateAlarm(_ context.Context, alarm *models.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if alarm.ID.IsZero() {
		alarm.ID = primitive.NewObjectID()
	}
	s.alarms[alarm.ID] = *alarm
	return nil
}

func (s *Store) GetAlarm(_ context.Context, id primitive.ObjectID) (models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alarm, ok := s.alarms[id]
	if !ok {
		return models.Alarm{}, repository.ErrNotFound
	}
	return alarm, nil
}

func (s *Store) ListAlarms(_ context.Context) ([]models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alarm, 0, len(s.alarms))
	for _, a := range s.alarms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *Store) UpdateAlarm(_ context.Context, alarm models.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.alarms[alarm.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// active is owned by SetAlarmActive
	alarm.Active = stored.Active
	s.alarms[alarm.ID] = alarm
	return nil
}

func (s *Store) SetAlarmActive(_ context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarm, ok := s.alarms[id]
	if !ok {
		return repository.ErrNotFound
	}
	alarm.Active = active
	alarm.UpdatedAt = at
	s.alarms[id] = alarm
	return nil
}

func (s *Store) DeleteAlarm(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alarms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.alarms, id)
	return nil
}

// ---- system status ----

func (s *Store) GetSystemStatus(_ context.Context) (models.SystemStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status == nil {
		return models.SystemStatus{}, repository.ErrNotFound
	}
	return *s.status, nil
}

func (s *Store) SaveSystemStatus(_ context.Context, status models.SystemStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = &status
	return nil
}

package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"foodshare/configs"
	"foodshare/entity"
	"foodshare/pkg/geo"
	"foodshare/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewStore(db)
}

type sentMail struct {
	templateID, recipient string
	fields                map[string]string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, templateID, recipient string, fields map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{templateID, recipient, fields})
	return n.err
}

func (n *recordingNotifier) to(templateID string) []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentMail
	for _, m := range n.sent {
		if m.templateID == templateID {
			out = append(out, m)
		}
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(ev OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) statuses() []entity.OrderStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.OrderStatus, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Status)
	}
	return out
}

// fakeGeo ตอบพิกัดจาก map และระยะ = |lon ต่างกัน| * 1000
type fakeGeo struct {
	places map[string]geo.Coordinates
	failTo map[geo.Coordinates]bool
}

var errGeoDown = errors.New("geo down")

func (f *fakeGeo) Coordinates(_ context.Context, address string) (geo.Coordinates, error) {
	c, ok := f.places[address]
	if !ok {
		return geo.Coordinates{}, geo.ErrNoResult
	}
	return c, nil
}

func (f *fakeGeo) Autocomplete(_ context.Context, text string) (map[string]geo.Coordinates, error) {
	out := map[string]geo.Coordinates{}
	for addr, c := range f.places {
		if len(addr) >= len(text) && addr[:len(text)] == text {
			out[addr] = c
		}
	}
	return out, nil
}

func (f *fakeGeo) WalkingDistance(_ context.Context, from, to geo.Coordinates) (float64, error) {
	if f.failTo[to] {
		return 0, errGeoDown
	}
	d := from[0] - to[0]
	if d < 0 {
		d = -d
	}
	return d * 1000, nil
}

func seedUser(t *testing.T, store *repository.Store, email, first string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", FirstName: first, LastName: "Test", Role: entity.RoleCustomer}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func seedRestaurant(t *testing.T, store *repository.Store, owner *entity.User, name string, open bool) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: name, Address: name + " street", Open: open, UserID: owner.ID}
	require.NoError(t, store.Restaurants.Create(context.Background(), r))
	return r
}

func seedItem(t *testing.T, store *repository.Store, rest *entity.Restaurant, name, price string) *entity.FoodItem {
	t.Helper()
	it := &entity.FoodItem{Name: name, Price: decimal.RequireFromString(price), InMenu: true, RestaurantID: rest.ID}
	require.NoError(t, store.FoodItems.Create(context.Background(), it))
	return it
}

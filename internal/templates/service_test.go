package templates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	createFn        func(template *SeatTemplate) error
	getByIDFn       func(id uuid.UUID) (*SeatTemplate, error)
	replaceLayoutFn func(templateID uuid.UUID, updates map[string]interface{}, seats []TemplateSeat, categories []CategoryPrice) (*SeatTemplate, error)
	deleteFn        func(id uuid.UUID) error
}

func (m *mockRepository) Create(template *SeatTemplate) error {
	if m.createFn != nil {
		return m.createFn(template)
	}
	return nil
}

func (m *mockRepository) GetByID(id uuid.UUID) (*SeatTemplate, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) GetByEventID(eventID uuid.UUID) (*SeatTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) ReplaceLayout(templateID uuid.UUID, updates map[string]interface{}, seats []TemplateSeat, categories []CategoryPrice) (*SeatTemplate, error) {
	if m.replaceLayoutFn != nil {
		return m.replaceLayoutFn(templateID, updates, seats, categories)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) SetPublished(templateID uuid.UUID, published bool) error {
	return nil
}

func (m *mockRepository) UpdateCategoryPrice(templateID uuid.UUID, category string, price float64, currency string) error {
	return nil
}

func (m *mockRepository) Delete(id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockPropagator struct {
	propagateFn func(ctx context.Context, eventID uuid.UUID) (*PropagationResult, error)
	calls       int
}

func (m *mockPropagator) PropagateTemplate(ctx context.Context, eventID uuid.UUID) (*PropagationResult, error) {
	m.calls++
	if m.propagateFn != nil {
		return m.propagateFn(ctx, eventID)
	}
	return &PropagationResult{}, nil
}

func validLayout() ([]SeatInput, []CategoryPriceInput) {
	seats := []SeatInput{
		{Label: "A1", Row: "A", Number: 1, Category: "PREMIUM"},
		{Label: "A2", Row: "A", Number: 2, Category: "PREMIUM"},
		{Label: "B1", Row: "B", Number: 1, Category: "GOLD", Blocked: true},
	}
	categories := []CategoryPriceInput{
		{Category: "PREMIUM", Price: 1499},
		{Category: "GOLD", Price: 999},
	}
	return seats, categories
}

func TestBuildLayout(t *testing.T) {
	seatInputs, categoryInputs := validLayout()

	seats, categories, err := buildLayout(seatInputs, categoryInputs)

	require.NoError(t, err)
	require.Len(t, seats, 3)
	assert.Equal(t, SeatStatusAvailable, seats[0].Status)
	assert.Equal(t, SeatStatusBlocked, seats[2].Status)
	require.Len(t, categories, 2)
	assert.Equal(t, "INR", categories[0].Currency)
}

func TestBuildLayoutRejectsDuplicateLabels(t *testing.T) {
	seats := []SeatInput{
		{Label: "A1", Row: "A", Number: 1, Category: "GOLD"},
		{Label: "A1", Row: "A", Number: 2, Category: "GOLD"},
	}
	categories := []CategoryPriceInput{{Category: "GOLD", Price: 999}}

	_, _, err := buildLayout(seats, categories)

	assert.ErrorContains(t, err, `duplicate seat label "A1"`)
}

func TestBuildLayoutRejectsDuplicateCategories(t *testing.T) {
	seats := []SeatInput{{Label: "A1", Row: "A", Number: 1, Category: "GOLD"}}
	categories := []CategoryPriceInput{
		{Category: "GOLD", Price: 999},
		{Category: "GOLD", Price: 899},
	}

	_, _, err := buildLayout(seats, categories)

	assert.ErrorContains(t, err, `duplicate category "GOLD"`)
}

func TestBuildLayoutRejectsUnpricedCategory(t *testing.T) {
	seats := []SeatInput{{Label: "A1", Row: "A", Number: 1, Category: "PLATINUM"}}
	categories := []CategoryPriceInput{{Category: "GOLD", Price: 999}}

	_, _, err := buildLayout(seats, categories)

	assert.ErrorContains(t, err, `seat "A1" references category "PLATINUM"`)
}

func TestCreateTemplateCountsSeats(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	seatInputs, categoryInputs := validLayout()
	resp, err := svc.CreateTemplate(CreateTemplateRequest{
		EventID:    uuid.New().String(),
		Name:       "Amphitheatre Layout",
		Seats:      seatInputs,
		Categories: categoryInputs,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.SellableSeat)
	assert.Equal(t, 1, resp.BlockedSeats)
	assert.Equal(t, "front", resp.Template.StagePosition)
	assert.False(t, resp.Template.Published)
}

func TestCreateTemplateDuplicateEvent(t *testing.T) {
	repo := &mockRepository{
		createFn: func(template *SeatTemplate) error {
			return gorm.ErrDuplicatedKey
		},
	}
	svc := NewService(repo)

	seatInputs, categoryInputs := validLayout()
	_, err := svc.CreateTemplate(CreateTemplateRequest{
		EventID:    uuid.New().String(),
		Name:       "Second Layout",
		Seats:      seatInputs,
		Categories: categoryInputs,
	})

	assert.ErrorContains(t, err, "event already has a seat template")
}

func TestUpdateTemplateRequiresSeatsAndCategoriesTogether(t *testing.T) {
	svc := NewService(&mockRepository{})

	seatInputs, _ := validLayout()
	_, _, err := svc.UpdateTemplate(context.Background(), uuid.New(), UpdateTemplateRequest{
		Seats: seatInputs,
	})

	assert.ErrorContains(t, err, "seats and categories must be updated together")
}

func TestUpdateTemplatePropagatesWhenPublished(t *testing.T) {
	template := &SeatTemplate{ID: uuid.New(), EventID: uuid.New(), Published: true}

	repo := &mockRepository{
		replaceLayoutFn: func(templateID uuid.UUID, updates map[string]interface{}, seats []TemplateSeat, categories []CategoryPrice) (*SeatTemplate, error) {
			return template, nil
		},
	}
	propagator := &mockPropagator{
		propagateFn: func(ctx context.Context, eventID uuid.UUID) (*PropagationResult, error) {
			assert.Equal(t, template.EventID, eventID)
			return &PropagationResult{ShowsUpdated: 3, SeatsUpdated: 12}, nil
		},
	}

	svc := NewService(repo)
	svc.SetPropagator(propagator)

	seatInputs, categoryInputs := validLayout()
	_, result, err := svc.UpdateTemplate(context.Background(), template.ID, UpdateTemplateRequest{
		Seats:      seatInputs,
		Categories: categoryInputs,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.ShowsUpdated)
	assert.Equal(t, 1, propagator.calls)
}

func TestUpdateTemplateSkipsPropagationWhenUnpublished(t *testing.T) {
	template := &SeatTemplate{ID: uuid.New(), EventID: uuid.New(), Published: false}

	repo := &mockRepository{
		replaceLayoutFn: func(templateID uuid.UUID, updates map[string]interface{}, seats []TemplateSeat, categories []CategoryPrice) (*SeatTemplate, error) {
			return template, nil
		},
	}
	propagator := &mockPropagator{}

	svc := NewService(repo)
	svc.SetPropagator(propagator)

	seatInputs, categoryInputs := validLayout()
	_, result, err := svc.UpdateTemplate(context.Background(), template.ID, UpdateTemplateRequest{
		Seats:      seatInputs,
		Categories: categoryInputs,
	})

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, propagator.calls)
}

func TestPropagateRejectsUnpublishedTemplate(t *testing.T) {
	template := &SeatTemplate{ID: uuid.New(), EventID: uuid.New(), Published: false}

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*SeatTemplate, error) { return template, nil },
	}

	svc := NewService(repo)
	svc.SetPropagator(&mockPropagator{})

	_, err := svc.Propagate(context.Background(), template.ID)

	assert.ErrorContains(t, err, "template is not published")
}

func TestDeleteTemplateRefusesPublished(t *testing.T) {
	template := &SeatTemplate{ID: uuid.New(), EventID: uuid.New(), Published: true}

	deleted := false
	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*SeatTemplate, error) { return template, nil },
		deleteFn: func(id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := NewService(repo)

	err := svc.DeleteTemplate(template.ID)

	assert.ErrorContains(t, err, "published templates cannot be deleted")
	assert.False(t, deleted)
}

package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
)

func queryContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestCreateBookingRequestToInput(t *testing.T) {
	tripID := uuid.New()
	extraID := uuid.New()
	phaseID := uuid.New().String()

	req := createBookingRequest{
		TripID:        tripID.String(),
		TravelDate:    "2026-10-01",
		Adults:        2,
		Children:      1,
		FullName:      "Jane Traveler",
		Email:         "jane@example.com",
		Phone:         "+201000000000",
		ExtraIDs:      []string{" " + extraID.String() + " "},
		RewardPhaseID: &phaseID,
	}

	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput returned error: %v", err)
	}
	if input.TripID != tripID {
		t.Fatalf("expected trip %s, got %s", tripID, input.TripID)
	}
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if !input.TravelDate.Equal(want) {
		t.Fatalf("expected travel date %v, got %v", want, input.TravelDate)
	}
	if len(input.ExtraIDs) != 1 || input.ExtraIDs[0] != extraID {
		t.Fatalf("expected extra %s, got %v", extraID, input.ExtraIDs)
	}
	if input.RewardPhaseID == nil || input.RewardPhaseID.String() != phaseID {
		t.Fatal("expected reward phase id to be parsed")
	}
}

func TestCreateBookingRequestToInputErrors(t *testing.T) {
	valid := createBookingRequest{
		TripID:     uuid.New().String(),
		TravelDate: "2026-10-01",
	}

	cases := []struct {
		name   string
		mutate func(*createBookingRequest)
	}{
		{"bad trip id", func(r *createBookingRequest) { r.TripID = "not-a-uuid" }},
		{"bad travel date", func(r *createBookingRequest) { r.TravelDate = "01/10/2026" }},
		{"bad extra id", func(r *createBookingRequest) { r.ExtraIDs = []string{"nope"} }},
		{"bad reward phase", func(r *createBookingRequest) {
			bad := "nope"
			r.RewardPhaseID = &bad
		}},
	}
	for _, tc := range cases {
		req := valid
		tc.mutate(&req)
		if _, err := req.toInput(); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestCreateBookingRequestBlankRewardPhaseIgnored(t *testing.T) {
	blank := "  "
	req := createBookingRequest{
		TripID:        uuid.New().String(),
		TravelDate:    "2026-10-01",
		RewardPhaseID: &blank,
	}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput returned error: %v", err)
	}
	if input.RewardPhaseID != nil {
		t.Fatal("expected a blank reward phase to be dropped")
	}
}

func TestBookingFilterFromQuery(t *testing.T) {
	tripID := uuid.New()
	c := queryContext(t, "/api/v1/staff/bookings?status=confirmed&trip_id="+tripID.String()+
		"&travel_from=2026-10-01&travel_to=2026-10-31&limit=20&offset=40")

	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		t.Fatalf("bookingFilterFromQuery returned error: %v", err)
	}
	if filter.Status == nil || *filter.Status != domain.BookingStatusConfirmed {
		t.Fatal("expected confirmed status filter")
	}
	if filter.TripID == nil || *filter.TripID != tripID {
		t.Fatal("expected trip filter")
	}
	if filter.TravelFrom == nil || filter.TravelFrom.Format(travelDateLayout) != "2026-10-01" {
		t.Fatal("expected travel_from filter")
	}
	if filter.TravelTo == nil || filter.TravelTo.Format(travelDateLayout) != "2026-10-31" {
		t.Fatal("expected travel_to filter")
	}
	if filter.Limit != 20 || filter.Offset != 40 {
		t.Fatalf("expected limit 20 offset 40, got %d %d", filter.Limit, filter.Offset)
	}
}

func TestBookingFilterFromQueryRejectsBadInput(t *testing.T) {
	if _, err := bookingFilterFromQuery(queryContext(t, "/?status=shipped")); err == nil {
		t.Error("expected an error for an unknown status")
	}
	if _, err := bookingFilterFromQuery(queryContext(t, "/?trip_id=nope")); err == nil {
		t.Error("expected an error for a bad trip id")
	}
	if _, err := bookingFilterFromQuery(queryContext(t, "/?travel_from=yesterday")); err == nil {
		t.Error("expected an error for a bad travel_from")
	}
}

func TestBookingFilterFromQueryEmpty(t *testing.T) {
	filter, err := bookingFilterFromQuery(queryContext(t, "/"))
	if err != nil {
		t.Fatalf("bookingFilterFromQuery returned error: %v", err)
	}
	if filter.Status != nil || filter.TripID != nil || filter.TravelFrom != nil || filter.TravelTo != nil {
		t.Fatal("expected an empty filter")
	}
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMilestones_Array(t *testing.T) {
	ms := ParseMilestones([]byte(`[{"id":"m1","name":"Deposit","amount":400,"status":"paid"},{"id":"m2","name":"Final Payment","amount":1600,"status":"pending"}]`))
	require.Len(t, ms, 2)
	require.Equal(t, "Deposit", ms[0].Name)
	require.Equal(t, 1600.0, ms[1].Amount)
}

func TestParseMilestones_SerializedString(t *testing.T) {
	// Legacy rows hold the array JSON-encoded as a string value.
	ms := ParseMilestones([]byte(`"[{\"id\":\"m1\",\"name\":\"Deposit\",\"amount\":400,\"status\":\"pending\"}]"`))
	require.Len(t, ms, 1)
	require.Equal(t, 400.0, ms[0].Amount)
}

func TestParseMilestones_Garbage(t *testing.T) {
	require.Empty(t, ParseMilestones([]byte(`not json at all`)))
	require.Empty(t, ParseMilestones([]byte(`"also not an array"`)))
	require.Empty(t, ParseMilestones([]byte(`{"a":1}`)))
	require.Empty(t, ParseMilestones(nil))
	require.Empty(t, ParseMilestones([]byte(`null`)))
}

func TestParseMilestones_MalformedEntriesSkipped(t *testing.T) {
	ms := ParseMilestones([]byte(`[{"id":"m1","name":"Deposit","amount":400,"status":"paid"},{"amount":"four hundred"},42]`))
	require.Len(t, ms, 1)
	require.Equal(t, "m1", ms[0].ID)
}

func TestMilestoneList_BookingUnmarshal(t *testing.T) {
	var b Booking
	err := json.Unmarshal([]byte(`{"id":"b1","total_price":2000,"payment_milestones":"[{\"id\":\"m1\",\"name\":\"Deposit\",\"amount\":400,\"status\":\"paid\"}]"}`), &b)
	require.NoError(t, err)
	require.Len(t, b.PaymentMilestones, 1)
	require.Equal(t, "paid", b.PaymentMilestones[0].Status)
}

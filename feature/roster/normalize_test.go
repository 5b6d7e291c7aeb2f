package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func normalizeJSON(t *testing.T, payload string) []Server {
	t.Helper()
	require.True(t, gjson.Valid(payload), "test payload must be valid JSON")
	servers, err := normalize(gjson.Parse(payload), zap.NewNop())
	require.NoError(t, err)
	return servers
}

func TestNormalize_PayloadShapes(t *testing.T) {
	entry := `{"number": 7, "name": "Payson", "online": 512, "queue": 0, "ip": "payson.arizona-rp.com", "port": 7777, "maxplayers": 1000}`

	shapes := map[string]string{
		"QueryKey":    fmt.Sprintf(`{"query": [%s]}`, entry),
		"BareArray":   fmt.Sprintf(`[%s]`, entry),
		"PlainObject": fmt.Sprintf(`{"payson": %s}`, entry),
	}

	var results [][]Server
	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			servers := normalizeJSON(t, payload)
			require.Len(t, servers, 1)
			assert.Equal(t, Server{
				Number:      7,
				Name:        "Payson",
				Online:      512,
				Queue:       0,
				Recommended: true,
				IP:          "payson.arizona-rp.com",
				Port:        7777,
				MaxPlayers:  1000,
			}, servers[0])
			results = append(results, servers)
		})
	}

	// All three shapes normalize identically.
	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestNormalize_UnsupportedShape(t *testing.T) {
	_, err := normalize(gjson.Parse(`"just a string"`), zap.NewNop())
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = normalize(gjson.Parse(`42`), zap.NewNop())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestNormalize_FieldAlternatives(t *testing.T) {
	t.Run("AlternativeNames", func(t *testing.T) {
		servers := normalizeJSON(t, `[{"serverNumber": 3, "playersOnline": 250, "queueLength": 12, "maxonline": 1500}]`)
		require.Len(t, servers, 1)
		assert.Equal(t, 3, servers[0].Number)
		assert.Equal(t, 250, servers[0].Online)
		assert.Equal(t, 12, servers[0].Queue)
		assert.Equal(t, 1500, servers[0].MaxPlayers)
	})

	t.Run("PriorityOrder", func(t *testing.T) {
		// "number" outranks "serverNumber" and "id".
		servers := normalizeJSON(t, `[{"number": 1, "serverNumber": 2, "id": 3}]`)
		assert.Equal(t, 1, servers[0].Number)

		// A zero "online" is not a value; the alternative wins.
		servers = normalizeJSON(t, `[{"online": 0, "playersOnline": 99}]`)
		assert.Equal(t, 99, servers[0].Online)
	})

	t.Run("EquivalentUnderAnyRecognizedName", func(t *testing.T) {
		a := normalizeJSON(t, `[{"number": 5, "online": 100, "queue": 2}]`)
		b := normalizeJSON(t, `[{"serverNumber": 5, "playersOnline": 100, "queueLength": 2}]`)
		assert.Equal(t, a, b)
	})
}

func TestNormalize_Defaults(t *testing.T) {
	servers := normalizeJSON(t, `[{}, {}]`)
	require.Len(t, servers, 2)

	first := servers[0]
	assert.Equal(t, 1, first.Number, "positional index + 1")
	assert.Equal(t, "Server 1", first.Name)
	assert.Equal(t, 0, first.Online)
	assert.Equal(t, 0, first.Queue)
	assert.False(t, first.Recommended)
	assert.Equal(t, "server1.arizona-rp.com", first.IP)
	assert.Equal(t, 7777, first.Port)
	assert.Equal(t, 1000, first.MaxPlayers)

	assert.Equal(t, 2, servers[1].Number)
	assert.Equal(t, "server2.arizona-rp.com", servers[1].IP)
}

func TestNormalize_Recommended(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  bool
	}{
		{"ExplicitRecomend", `{"recomend": true, "online": 10}`, true},
		{"ExplicitRecommended", `{"recommended": true}`, true},
		{"HeuristicPopularUncongested", `{"online": 401, "queue": 0}`, true},
		{"HeuristicQueueBlocked", `{"online": 500, "queue": 3}`, false},
		{"HeuristicBelowFloor", `{"online": 400, "queue": 0}`, false},
		{"ExplicitFalseNoHeuristic", `{"recomend": false, "online": 10, "queue": 0}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			servers := normalizeJSON(t, "["+tt.entry+"]")
			require.Len(t, servers, 1)
			assert.Equal(t, tt.want, servers[0].Recommended)
		})
	}
}

func TestNormalize_SkipsNonObjectEntries(t *testing.T) {
	servers := normalizeJSON(t, `[{"number": 1}, "garbage", 42, {"number": 4}]`)
	require.Len(t, servers, 2)
	assert.Equal(t, 1, servers[0].Number)
	assert.Equal(t, 4, servers[1].Number)
}

func TestNormalize_PresentButEmptyKeptForSingleKeyFields(t *testing.T) {
	servers := normalizeJSON(t, `[{"name": "", "ip": "", "port": 0}]`)
	require.Len(t, servers, 1)
	assert.Equal(t, "", servers[0].Name)
	assert.Equal(t, "", servers[0].IP)
	assert.Equal(t, 0, servers[0].Port)
}

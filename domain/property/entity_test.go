package property

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRating_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Rating
		wantErr bool
	}{
		{name: "null is unrated", input: `null`, want: Rating{}},
		{name: "zero is rated", input: `0`, want: Rating{Score: 0, Rated: true}},
		{name: "score", input: `4.8`, want: Rating{Score: 4.8, Rated: true}},
		{name: "above range", input: `5.1`, wantErr: true},
		{name: "negative", input: `-1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Rating
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRating_MarshalUnrated(t *testing.T) {
	data, err := json.Marshal(struct {
		R Rating `json:"r"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":null}`, string(data))
}

func TestRating_Display(t *testing.T) {
	assert.Equal(t, "New", Rating{}.Display())
	assert.Equal(t, "0.0", Rating{Rated: true}.Display())
	assert.Equal(t, "4.8", Rating{Score: 4.8, Rated: true}.Display())
}

func TestProperty_Validate(t *testing.T) {
	valid := func() Property {
		return Property{ID: "x", Price: 100, Period: Monthly, Type: House, Area: 10}
	}

	tests := []struct {
		name   string
		mutate func(p *Property)
		want   error
	}{
		{name: "valid", mutate: func(p *Property) {}},
		{name: "missing id", mutate: func(p *Property) { p.ID = "" }, want: ErrMissingID},
		{name: "zero price", mutate: func(p *Property) { p.Price = 0 }, want: ErrInvalidPrice},
		{name: "unknown type", mutate: func(p *Property) { p.Type = "Castle" }, want: ErrInvalidType},
		{name: "unknown period", mutate: func(p *Property) { p.Period = "week" }, want: ErrInvalidPeriod},
		{name: "negative bedrooms", mutate: func(p *Property) { p.Bedrooms = -1 }, want: ErrInvalidCount},
		{name: "zero area", mutate: func(p *Property) { p.Area = 0 }, want: ErrInvalidArea},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestProperty_Clone(t *testing.T) {
	p := Property{Images: []string{"a"}, Amenities: []string{"WiFi"}}
	c := p.Clone()
	c.Images[0] = "b"
	c.Amenities[0] = "Gym"

	assert.Equal(t, "a", p.Images[0])
	assert.Equal(t, "WiFi", p.Amenities[0])
}

func TestProperty_PrimaryImage(t *testing.T) {
	assert.Equal(t, "", (&Property{}).PrimaryImage())
	assert.Equal(t, "a", (&Property{Images: []string{"a", "b"}}).PrimaryImage())
}

func TestSeed(t *testing.T) {
	props, err := Seed()
	require.NoError(t, err)
	require.Len(t, props, 3)

	assert.Equal(t, "Modern Loft in Downtown", props[0].Title)
	assert.Equal(t, "me", props[0].OwnerID)
	assert.Equal(t, House, props[1].Type)
	assert.Equal(t, 0, props[2].Bedrooms)
	assert.False(t, props[2].Verified)
	assert.Equal(t, Rating{Score: 4.2, Rated: true}, props[2].Rating)
}

func TestDecodeSeed_RejectsSchemaViolation(t *testing.T) {
	_, err := decodeSeed([]byte(`[{"id": "1", "title": "x"}]`))
	assert.Error(t, err)

	_, err = decodeSeed([]byte(`[{"id":"1","title":"x","price":-5,"period":"month","location":"a","type":"House",
		"bedrooms":1,"bathrooms":1,"area":10,"amenities":[],"images":[],"ownerId":"o","ownerName":"n",
		"reviewsCount":0,"isVerified":false}]`))
	assert.Error(t, err)
}

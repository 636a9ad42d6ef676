package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchdash/internal/figure"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

type optionJSON struct {
	Title struct {
		Text string `json:"text"`
	} `json:"title"`
	Series []struct {
		Type string            `json:"type"`
		Name string            `json:"name"`
		Data []json.RawMessage `json:"data"`
	} `json:"series"`
}

func decodeOption(t *testing.T, fig figure.Figure) optionJSON {
	t.Helper()
	opt, err := EChartsOption(fig)
	require.NoError(t, err)
	raw, err := json.Marshal(opt)
	require.NoError(t, err)

	var out optionJSON
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func samplePie() *figure.PieFigure {
	return &figure.PieFigure{
		Title: "Total Successful Launches by Site",
		Slices: []figure.Slice{
			{Label: "KSC LC-39A", Value: 10},
			{Label: "CCAFS LC-40", Value: 7},
		},
	}
}

func sampleScatter() *figure.ScatterFigure {
	return &figure.ScatterFigure{
		Title:  "Success by Payload Mass for All Sites",
		XLabel: figure.AxisPayload,
		YLabel: figure.AxisOutcome,
		Series: []figure.Series{
			{Name: "FT", Points: []figure.Point{
				{PayloadMassKg: 2490, Class: 1, Site: "KSC LC-39A", FlightNumber: 6, BoosterVersion: "F9 FT B1031.1"},
				{PayloadMassKg: 5200, Class: 0, Site: "KSC LC-39A"},
			}},
			{Name: "B4", Points: []figure.Point{
				{PayloadMassKg: 3600, Class: 1, Site: "CCAFS SLC-40", FlightNumber: 9},
			}},
		},
	}
}

func TestEChartsOption_Pie(t *testing.T) {
	opt := decodeOption(t, samplePie())

	assert.Equal(t, "Total Successful Launches by Site", opt.Title.Text)
	require.Len(t, opt.Series, 1)
	assert.Equal(t, "pie", opt.Series[0].Type)
	require.Len(t, opt.Series[0].Data, 2)

	var slice struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	require.NoError(t, json.Unmarshal(opt.Series[0].Data[0], &slice))
	assert.Equal(t, "KSC LC-39A", slice.Name)
	assert.Equal(t, 10, slice.Value)
}

func TestEChartsOption_Scatter(t *testing.T) {
	opt := decodeOption(t, sampleScatter())

	assert.Equal(t, "Success by Payload Mass for All Sites", opt.Title.Text)
	require.Len(t, opt.Series, 2)
	assert.Equal(t, "scatter", opt.Series[0].Type)
	assert.Equal(t, "FT", opt.Series[0].Name)
	assert.Equal(t, "B4", opt.Series[1].Name)
	require.Len(t, opt.Series[0].Data, 2)

	var point struct {
		Name  string    `json:"name"`
		Value []float64 `json:"value"`
	}
	require.NoError(t, json.Unmarshal(opt.Series[0].Data[0], &point))
	assert.Equal(t, []float64{2490, 1}, point.Value)
	assert.Equal(t, "Flight 6, F9 FT B1031.1, KSC LC-39A", point.Name)
}

type bogusFigure struct{}

func (bogusFigure) Kind() figure.Kind    { return "bogus" }
func (bogusFigure) FigureTitle() string { return "" }

func TestEChartsOption_Unsupported(t *testing.T) {
	_, err := EChartsOption(bogusFigure{})
	assert.ErrorIs(t, err, ErrUnsupportedFigure)
}

func TestPointName(t *testing.T) {
	assert.Equal(t, "Flight 9, CCAFS SLC-40", pointName(figure.Point{FlightNumber: 9, Site: "CCAFS SLC-40"}))
	assert.Equal(t, "KSC LC-39A", pointName(figure.Point{Site: "KSC LC-39A"}))
}

func TestPNG(t *testing.T) {
	tests := []struct {
		name string
		fig  figure.Figure
	}{
		{"pie", samplePie()},
		{"scatter", sampleScatter()},
		{"single point scatter", &figure.ScatterFigure{
			Title:  "Success by Payload Mass for VAFB SLC-4E",
			Series: []figure.Series{{Name: "FT", Points: []figure.Point{{PayloadMassKg: 9600, Class: 1}}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, PNG(&buf, tt.fig, 640, 320))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output is not a PNG")
		})
	}
}

func TestPNG_NothingToDraw(t *testing.T) {
	var buf bytes.Buffer

	err := PNG(&buf, &figure.PieFigure{Slices: []figure.Slice{{Label: "Success"}, {Label: "Failed"}}}, 0, 0)
	assert.ErrorIs(t, err, ErrNothingToDraw)

	err = PNG(&buf, &figure.ScatterFigure{Series: []figure.Series{}}, 0, 0)
	assert.ErrorIs(t, err, ErrNothingToDraw)

	err = PNG(&buf, bogusFigure{}, 0, 0)
	assert.ErrorIs(t, err, ErrUnsupportedFigure)
	assert.Zero(t, buf.Len())
}

func TestWritePage(t *testing.T) {
	var buf bytes.Buffer
	err := WritePage(&buf, "SpaceX Launch Records Dashboard", []Panel{
		{ID: "success-pie-chart", Figure: samplePie()},
		{ID: "success-payload-scatter-chart", Figure: sampleScatter()},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "SpaceX Launch Records Dashboard")
	assert.Contains(t, html, "success-pie-chart")
	assert.Contains(t, html, "success-payload-scatter-chart")
	assert.True(t, strings.Contains(html, "echarts"), "page should load echarts")
}

// README: Open-Meteo forecast client with geocoding and forecast-horizon clamping.
package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voyage/internal/geocode"
	"voyage/internal/restclient"
	"voyage/internal/types"
)

const forecastURL = "https://api.open-meteo.com/v1/forecast"

var (
	dailyParams = strings.Join([]string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "sunrise", "sunset",
		"precipitation_sum", "rain_sum", "showers_sum", "snowfall_sum", "precipitation_hours",
		"precipitation_probability_max", "wind_speed_10m_max", "wind_direction_10m_dominant", "uv_index_max",
	}, ",")
	hourlyParams = strings.Join([]string{
		"temperature_2m", "relative_humidity_2m", "precipitation_probability", "showers",
		"rain", "snowfall", "cloud_cover", "visibility", "wind_speed_80m",
	}, ",")
)

const okRemark = "Data fetched successfully for the valid forecast window."

// Client fetches forecasts for named places.
type Client struct {
	geo     geocode.Resolver
	rest    *restclient.Client
	baseURL string
	now     func() time.Time
}

func NewClient(geo geocode.Resolver, timeout time.Duration) *Client {
	return &Client{
		geo:     geo,
		rest:    restclient.New("open-meteo", timeout),
		baseURL: forecastURL,
		now:     time.Now,
	}
}

// Forecast resolves location and fetches daily and hourly series for the part of
// [start, end] inside the forecast horizon. A window entirely beyond the horizon
// is not an error: the result carries nil Data and an explanatory remark.
func (c *Client) Forecast(ctx context.Context, location string, start, end time.Time) (*types.Forecast, error) {
	point, err := c.geo.Resolve(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", location, err)
	}

	w := ClampToHorizon(c.now(), start, end)
	out := &types.Forecast{
		Location: point,
		Start:    w.Start.Format(dateLayout),
		End:      w.End.Format(dateLayout),
	}
	if w.Empty {
		out.Remarks = strings.Join(w.Remarks, " ")
		return out, nil
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(point.Lng, 'f', -1, 64))
	params.Set("daily", dailyParams)
	params.Set("hourly", hourlyParams)
	params.Set("models", "best_match")
	params.Set("start_date", out.Start)
	params.Set("end_date", out.End)
	params.Set("timezone", "auto")

	var data types.ForecastData
	if err := c.rest.GetJSON(ctx, c.baseURL, params, &data); err != nil {
		return nil, err
	}
	out.Data = &data
	out.Remarks = okRemark
	if len(w.Remarks) > 0 {
		out.Remarks = strings.Join(w.Remarks, " ")
	}
	return out, nil
}

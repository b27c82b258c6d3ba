package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"
)

// Weather proxies a (lat,lng) query to a keyless weather API and
// normalizes the response into the client's key=value block (spec.md
// §4.I), grounded on
// original_source/backend/ingestion/weather_service.py's wttr.in-primary,
// Open-Meteo-fallback shape.
func (h Handlers) Weather(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "missing lat/lng", http.StatusBadRequest)
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}

	cond, ok := fetchWttr(client, lat, lng)
	if !ok {
		cond, ok = fetchOpenMeteo(client, lat, lng)
	}
	if !ok {
		http.Error(w, "weather unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "city=%s\ntemperature_c=%.1f\npressure_hPa=%.1f\npressure_chg=%s\n"+
		"humidity_percent=%d\nwind_speed_mps=%.1f\nwind_dir_name=%s\nclouds=%s\n"+
		"conditions=%s\nattribution=%s\ntimezone=%s\n",
		cond.city, cond.tempC, cond.pressureHPa, cond.pressureChg,
		cond.humidityPct, cond.windSpeedMPS, cond.windDirName, cond.clouds,
		cond.conditions, cond.attribution, cond.timezone)
}

type weatherCondition struct {
	city, pressureChg, windDirName, clouds, conditions, attribution, timezone string
	tempC, pressureHPa, windSpeedMPS                                          float64
	humidityPct                                                               int
}

func fetchWttr(client *http.Client, lat, lng float64) (weatherCondition, bool) {
	url := fmt.Sprintf("https://wttr.in/%g,%g?format=j1", lat, lng)
	resp, err := client.Get(url)
	if err != nil {
		return weatherCondition{}, false
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentCondition []struct {
			TempC       string `json:"temp_C"`
			Pressure    string `json:"pressure"`
			Humidity    string `json:"humidity"`
			WindspeedKmph string `json:"windspeedKmph"`
			Winddir16Point string `json:"winddir16Point"`
			Cloudcover  string `json:"cloudcover"`
			WeatherDesc []struct {
				Value string `json:"value"`
			} `json:"weatherDesc"`
		} `json:"current_condition"`
		NearestArea []struct {
			AreaName []struct {
				Value string `json:"value"`
			} `json:"areaName"`
		} `json:"nearest_area"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.CurrentCondition) == 0 {
		return weatherCondition{}, false
	}

	cc := payload.CurrentCondition[0]
	tempC, _ := strconv.ParseFloat(cc.TempC, 64)
	pressure, _ := strconv.ParseFloat(cc.Pressure, 64)
	humidity, _ := strconv.Atoi(cc.Humidity)
	windKmph, _ := strconv.ParseFloat(cc.WindspeedKmph, 64)

	city := ""
	if len(payload.NearestArea) > 0 && len(payload.NearestArea[0].AreaName) > 0 {
		city = payload.NearestArea[0].AreaName[0].Value
	}
	desc := ""
	if len(cc.WeatherDesc) > 0 {
		desc = cc.WeatherDesc[0].Value
	}

	return weatherCondition{
		city: city, tempC: tempC, pressureHPa: pressure, pressureChg: "0",
		humidityPct: humidity, windSpeedMPS: windKmph / 3.6,
		windDirName: cc.Winddir16Point, clouds: cc.Cloudcover,
		conditions: desc, attribution: "wttr.in",
		timezone: timezoneOffsetName(lng),
	}, true
}

func fetchOpenMeteo(client *http.Client, lat, lng float64) (weatherCondition, bool) {
	url := fmt.Sprintf("https://api.open-meteo.com/v1/forecast?latitude=%g&longitude=%g&current=temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,pressure_msl,weather_code&timezone=GMT", lat, lng)
	resp, err := client.Get(url)
	if err != nil {
		return weatherCondition{}, false
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature2m      float64 `json:"temperature_2m"`
			RelativeHumidity2m int     `json:"relative_humidity_2m"`
			WindSpeed10m       float64 `json:"wind_speed_10m"`
			WindDirection10m   int     `json:"wind_direction_10m"`
			PressureMSL        float64 `json:"pressure_msl"`
			WeatherCode        int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weatherCondition{}, false
	}

	return weatherCondition{
		city: "", tempC: payload.Current.Temperature2m, pressureHPa: payload.Current.PressureMSL,
		pressureChg: "0", humidityPct: payload.Current.RelativeHumidity2m,
		windSpeedMPS: payload.Current.WindSpeed10m, windDirName: compassName(payload.Current.WindDirection10m),
		clouds: "", conditions: weatherCodeDescription(payload.Current.WeatherCode),
		attribution: "open-meteo.com", timezone: timezoneOffsetName(lng),
	}, true
}

// timezoneOffsetName resolves a fixed UTC offset from longitude alone
// (15 degrees per hour), the "longitude-based fallback" spec.md §4.I
// names explicitly — no IANA timezone database library appears anywhere
// in the example pack, so this is the one tz resolution strategy this
// handler implements.
func timezoneOffsetName(lng float64) string {
	offsetHours := int(math.Round(lng / 15))
	if offsetHours > 12 {
		offsetHours = 12
	}
	if offsetHours < -12 {
		offsetHours = -12
	}
	sign := "+"
	if offsetHours < 0 {
		sign, offsetHours = "-", -offsetHours
	}
	return fmt.Sprintf("UTC%s%02d:00", sign, offsetHours)
}

var compassPoints = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

func compassName(deg int) string {
	idx := int((float64(deg)/22.5)+0.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

func weatherCodeDescription(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Partly cloudy"
	case code <= 48:
		return "Fog"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Showers"
	default:
		return "Thunderstorm"
	}
}

package entity

import "time"

// SensorReading показания датчиков теплицы, присланные ESP32.
type SensorReading struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"timestamp"`
	Moisture    float64   `json:"moisture"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// ActionLog запись о команде, отправленной устройству.
type ActionLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"timestamp"`
	ActionType string    `json:"action_type"`
	Data       string    `json:"data"`
}

// WeatherReport текущая погода для участка.
type WeatherReport struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Description string    `json:"description"`
	Pressure    float64   `json:"pressure"`
	WindSpeed   float64   `json:"wind_speed"`
	Location    string    `json:"location"`
}

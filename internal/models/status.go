package models

import "time"

type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

type StatusCheckInput struct {
	ClientName string `json:"client_name" binding:"required"`
}

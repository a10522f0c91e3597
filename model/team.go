package model

type Team struct {
	ID           int32
	DataSourceID int32
	Name         string
	Code         string
}

type Competition struct {
	ID           int32
	DataSourceID int32
	Name         string
	Season       int32
	Teams        []Team
}

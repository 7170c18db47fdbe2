package domain

// BoardInfo is an entry of the static board registry.
type BoardInfo struct {
	Id   BoardId   `yaml:"id" validate:"required,gt=0"`
	Name BoardName `yaml:"name" validate:"required"`
}

type Board struct {
	Id     BoardId   `json:"id"`
	Name   BoardName `json:"name"`
	Active bool      `json:"active"`
}

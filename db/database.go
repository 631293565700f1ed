package db

import "gorm.io/gorm"

// Database hands out the shared gorm handle; repositories must not hold
// connections across unrelated calls.
type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

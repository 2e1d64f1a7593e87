// internal/types/types.go
package types

// EntityID - идентификатор размещённой сущности. 0 - «нет сущности».
type EntityID uint64

package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 読み→書きの行ロック。SQLiteはFOR UPDATE構文を持たないので付けない
// （SQLiteはトランザクション自体が書き込みを直列化する）。
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

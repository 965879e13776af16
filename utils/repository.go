// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package utils

type Tabler interface {
	TableName() string
}

type Repository[ID any, T Tabler, Tx any] interface {
	Create(tx Tx, t *T) error
	CreateBatch(tx Tx, ts []T) error
	Read(id ID) (T, error)
	Delete(tx Tx, id ID) error
	List(ids []ID) ([]T, error)
	All() ([]T, error)
	Transaction(f func(tx Tx) error) error
	GetDB(tx Tx) Tx

	Save(tx Tx, t *T) error
	SaveBatch(tx Tx, ts []T) error
}

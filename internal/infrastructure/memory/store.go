// Package memory implementa los repositorios del dominio en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo local) y como doble de prueba de los casos de uso.
package memory

import (
	"sync"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// data contiene todo el estado; Store lo protege con un mutex.
type data struct {
	products  map[string]entity.Product
	skuIndex  map[string]string
	movements []entity.StockMovement
	users     map[string]entity.User
	authIndex map[string]string
	audits    []entity.AuditLogEntry
}

func newData() *data {
	return &data{
		products:  make(map[string]entity.Product),
		skuIndex:  make(map[string]string),
		users:     make(map[string]entity.User),
		authIndex: make(map[string]string),
	}
}

// clone copia el estado para que una transacción pueda descartarse sin efectos.
func (d *data) clone() *data {
	c := &data{
		products:  make(map[string]entity.Product, len(d.products)),
		skuIndex:  make(map[string]string, len(d.skuIndex)),
		movements: append([]entity.StockMovement(nil), d.movements...),
		users:     make(map[string]entity.User, len(d.users)),
		authIndex: make(map[string]string, len(d.authIndex)),
		audits:    append([]entity.AuditLogEntry(nil), d.audits...),
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.skuIndex {
		c.skuIndex[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.authIndex {
		c.authIndex[k] = v
	}
	return c
}

// Store almacén en memoria. Las transacciones se serializan con mu (un único escritor),
// equivalente al bloqueo de fila del backend PostgreSQL.
type Store struct {
	mu   sync.Mutex
	data *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newData()}
}

// scope da acceso al estado: el de la transacción en curso o el del Store bajo su mutex.
type scope struct {
	store *Store
	tx    *data
}

func (s scope) with(fn func(d *data) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(s.store.data)
}

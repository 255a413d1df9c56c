package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ID is a uuid primary or foreign key. It is stored as text ("xxxxxxxx-...")
// and declared as char(36) on mysql, which has no uuid column type.
type ID uuid.UUID

type AccountID = ID
type MessageID = ID

var NilID ID

func NewID() ID { return ID(uuid.New()) }

func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, err
	}
	return ID(u), nil
}

func (id ID) String() string { return uuid.UUID(id).String() }

func (id ID) IsZero() bool { return id == NilID }

func (id ID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id ID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

func (id *ID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }

func (ID) GormDataType() string { return "uuid" }

func (ID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "char(36)"
	}
	return "uuid"
}

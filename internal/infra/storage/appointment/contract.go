package appointment

import (
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
)

// Store переиспользуем контракт key-value хранилища
type Store = kvstore.Store

// keyPrefix префикс ключей записей в хранилище
const keyPrefix = "appointment:"

func appointmentKey(id string) string {
	return keyPrefix + id
}

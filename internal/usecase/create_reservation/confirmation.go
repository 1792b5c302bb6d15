package create_reservation

import (
	"strings"

	"github.com/google/uuid"
)

// confirmationPrefix префикс внешнего номера подтверждения
const confirmationPrefix = "MR-"

// newConfirmationNumber генерирует непрозрачный внешний номер подтверждения
// Формат не несет смысловой нагрузки - номер нужен только для общения с клиентом
func newConfirmationNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return confirmationPrefix + raw[:10]
}

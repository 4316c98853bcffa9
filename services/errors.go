package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed          = errors.New("validation failed")
	ErrInvalidFilter             = errors.New("invalid filter parameter")
	ErrInvalidReference          = errors.New("referenced player, team or position does not exist")
	ErrObjectNameRequired        = errors.New("objectName query parameter is required")
	ErrCannotRemoveSelfAsCaptain = errors.New("You cannot remove yourself from the team if you are the captain.")

	// Ошибки конфликтов
	ErrAlreadyMember    = errors.New("player is already a member of this team")
	ErrJoinableConflict = errors.New("a pending request already exists for this player and team")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationRequired = errors.New("authentication credentials were not provided")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrCaptainActionForbidden = errors.New("only the team captain can perform this action")

	// Внешние зависимости
	ErrStorageFailed = errors.New("object storage request failed")
)

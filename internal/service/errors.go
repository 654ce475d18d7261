package service

import "errors"

// Терминальная таксономия ошибок сервисного слоя. Хендлеры транслируют их
// в HTTP-статусы; автоматических повторов нигде нет.
var (
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrValidation — плохой ввод: пустой заголовок, отсутствующий файл и т.п.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFileType — расширение вне списка допустимых.
	ErrInvalidFileType = errors.New("unsupported file type")

	// ErrShareInvalid — единый ответ на любую невалидную публичную ссылку:
	// не найдена, отозвана, истекла или указывает на архивный документ.
	// Причина анонимному запросившему не раскрывается.
	ErrShareInvalid = errors.New("invalid or expired link")

	// ErrSentinelCategory — попытка удалить категорию-корзину Uncategorized.
	ErrSentinelCategory = errors.New("sentinel category cannot be deleted")
)

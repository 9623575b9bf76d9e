package notificationsettings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки уведомлений не найдены
	ErrSettingsNotFound = errors.New("notificationsettings.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notificationsettings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notificationsettings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notificationsettings.repository: failed to scan row")
)

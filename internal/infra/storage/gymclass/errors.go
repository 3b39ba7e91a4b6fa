package gymclass

import "errors"

var (
	// ErrGymClassNotFound возвращается, когда класс не найден
	ErrGymClassNotFound = errors.New("gymclass.repository: gym class not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("gymclass.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("gymclass.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("gymclass.repository: failed to scan row")
)

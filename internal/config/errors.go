package config

import "errors"

var (
	ErrRedisAddrMissing           = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB             = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidTimezone            = errors.New("TZ must be a valid IANA time zone")
	ErrDBPathMissing              = errors.New("DB_PATH is required")
	ErrUnknownStoreDriver         = errors.New("STORE_DRIVER must be sqlite or redis")
	ErrUnknownNotifyDriver        = errors.New("NOTIFY_DRIVER must be log, telegram or none")
	ErrTelegramCredentialsMissing = errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required for the telegram driver")
)

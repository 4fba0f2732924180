package enum

type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	DEVELOPMENT EnvEnum = "development"
	STAGING     EnvEnum = "staging"
	PRODUCTION  EnvEnum = "production"
)

func (e EnvEnum) ToString() string {
	return string(e)
}

func (e EnvEnum) IsValid() bool {
	switch e {
	case LOCAL, DEVELOPMENT, STAGING, PRODUCTION:
		return true
	}
	return false
}

// IsDebug is true where verbose logs and gin debug mode are wanted.
func (e EnvEnum) IsDebug() bool {
	return e == LOCAL || e == DEVELOPMENT
}

package api

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var snmpVersions = map[string]struct{}{"v1": {}, "v2c": {}, "v3": {}}

func validateSNMPVersion(fl validator.FieldLevel) bool {
	_, ok := snmpVersions[fl.Field().String()]
	return ok
}

// RegisterValidators installs the custom binding rules on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unsupported validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("snmpversion", validateSNMPVersion)
}

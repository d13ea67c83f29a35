package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	validate.RegisterStructValidation(validateStoreDriver, StoreConfig{})

	translations := []struct {
		tag     string
		message string
	}{
		{"file", "{0} must be an existing and readable file"},
		{"timezone", "{0} must be a valid IANA time zone"},
		{"required_for_driver", "{0} is required for the {1} store driver"},
	}
	for _, translation := range translations {
		tag, message := translation.tag, translation.message
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, strings.TrimPrefix(fe.Namespace(), "Config."), fe.Param())
			return t
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return validate, trans, nil
}

// validateStoreDriver requires the settings of the selected store driver.
func validateStoreDriver(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(StoreConfig)

	require := func(value string, field string) {
		if value == "" {
			sl.ReportError(value, field, field, "required_for_driver", cfg.Driver)
		}
	}
	switch cfg.Driver {
	case "yaml":
		require(cfg.Directory, "directory")
	case "sqlite3":
		require(cfg.Database.Path, "database.path")
	case "mysql", "postgres":
		require(cfg.Database.Host, "database.host")
		require(cfg.Database.Database, "database.database")
	case "firebase":
		require(cfg.Firebase.URL, "firebase.url")
	}
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	// Check if the owner has read permission
	return info.Mode().Perm()&(1<<(uint(8))) != 0
}

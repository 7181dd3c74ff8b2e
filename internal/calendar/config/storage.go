package config

// StorageConfig содержит каталог хранения зашифрованных документов.
type StorageConfig struct {
	DataDir string `yaml:"data_dir" env:"CALENDAR_DATA_DIR" env-default:"data"`
}

package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AwsEndpointUrl      string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion           string `flag:"awsregion" env:"AWS_REGION" default:"ca-central-1" description:"AWS region"`
	AwsAccessKeyId      string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey  string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket           string `flag:"awsbucket" env:"AWS_BUCKET" default:"qmacanada.ca" description:"S3 bucket"`
	GalleryPhotoFolder  string `flag:"gpf" env:"GALLERY_PHOTO_FOLDER" default:"gallery" description:"S3 folder for gallery photos"`
	GallerySourceURL    string `flag:"gsu" env:"GALLERY_SOURCE_URL" default:"http://localhost:8081/api/gallery/" description:"URL of the gallery feed the gallery page reads from"`
	GalleryFetchTimeout int    `flag:"gft" env:"GALLERY_FETCH_TIMEOUT" default:"10" description:"Seconds to wait for the gallery feed"`
	HomePagePhotoFolder string `flag:"hppf" env:"HOME_PAGE_PHOTO_FOLDER" default:"home-page" description:"S3 folder for home page photos"`
	Host                string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	LogLevel            string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxCacheWorkers     int    `flag:"mcc" env:"MAX_CACHE_WORKERS" default:"20" description:"Maximum number of concurrent cache workers"`
	RevealPolicy        string `flag:"reveal" env:"REVEAL_POLICY" default:"mount" description:"When gallery reveal effects replay. 'mount' replays when a photo re-enters the grid, 'identity' plays once per photo"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"go.uber.org/multierr"
)

type config struct {
	addr        string
	env         string
	apiURL      string
	pageSize    int
	catalog     catalogConfig
	auth        authConfig
	cloudinary  string
	rateLimiter rateLimiterConfig
	cors        corsConfig
}

type catalogConfig struct {
	baseURL   string
	token     string
	imageBase string
	timeout   time.Duration
}

type authConfig struct {
	user     string
	passHash string
	token    tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type rateLimiterConfig struct {
	requestsPerTimeFrame int
	timeFrame            time.Duration
	enabled              bool
}

type corsConfig struct {
	allowedOrigins []string
}

// envConfig is the raw shape of the environment. Defaults apply to keys that
// are absent; required keys are checked after loading.
type envConfig struct {
	Addr               string        `default:":8080"`
	Env                string        `default:"development"`
	ExternalURL        string        `default:"localhost:8080"`
	CatalogAPIBase     string        `validate:"required,url"`
	CatalogAPIToken    string        `validate:"required"`
	CatalogImageBase   string        `validate:"required,url"`
	CatalogAPITimeout  time.Duration `default:"30s"`
	PageSize           int           `default:"12" validate:"min=1,max=60"`
	AdminUser          string        `validate:"required"`
	AdminPassHash      string        `validate:"required"`
	AuthTokenSecret    string        `validate:"required,min=16"`
	AuthTokenExp       time.Duration `default:"12h"`
	CloudinaryURL      string
	RateLimiterCount   int      `default:"20" validate:"min=1"`
	RateLimiterEnabled bool     `default:"true"`
	CORSAllowedOrigins []string `default:"[\"https://*\",\"http://*\"]"`
}

// loadConfig reads the environment through getenv. Every problem is
// reported at once rather than one per restart.
func loadConfig(getenv func(string) string) (config, error) {
	var env envConfig
	if err := defaults.Set(&env); err != nil {
		return config{}, fmt.Errorf("config defaults: %w", err)
	}

	r := envReader{getenv: getenv}
	r.str("ADDR", &env.Addr)
	r.str("ENV", &env.Env)
	r.str("EXTERNAL_URL", &env.ExternalURL)
	r.str("CATALOG_API_BASE", &env.CatalogAPIBase)
	r.str("CATALOG_API_TOKEN", &env.CatalogAPIToken)
	r.str("CATALOG_IMAGE_BASE", &env.CatalogImageBase)
	r.duration("CATALOG_API_TIMEOUT", &env.CatalogAPITimeout)
	r.int("PAGE_SIZE", &env.PageSize)
	r.str("ADMIN_USER", &env.AdminUser)
	r.str("ADMIN_PASS_HASH", &env.AdminPassHash)
	r.str("AUTH_TOKEN_SECRET", &env.AuthTokenSecret)
	r.duration("AUTH_TOKEN_EXP", &env.AuthTokenExp)
	r.str("CLOUDINARY_URL", &env.CloudinaryURL)
	r.int("RATELIMITER_REQUESTS_COUNT", &env.RateLimiterCount)
	r.bool("RATE_LIMITER_ENABLED", &env.RateLimiterEnabled)
	r.list("CORS_ALLOWED_ORIGINS", &env.CORSAllowedOrigins)

	errs := r.errs
	if err := Validate.Struct(env); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return config{}, errs
	}

	return config{
		addr:     env.Addr,
		env:      env.Env,
		apiURL:   env.ExternalURL,
		pageSize: env.PageSize,
		catalog: catalogConfig{
			baseURL:   env.CatalogAPIBase,
			token:     env.CatalogAPIToken,
			imageBase: env.CatalogImageBase,
			timeout:   env.CatalogAPITimeout,
		},
		auth: authConfig{
			user:     env.AdminUser,
			passHash: env.AdminPassHash,
			token: tokenConfig{
				secret: env.AuthTokenSecret,
				exp:    env.AuthTokenExp,
				iss:    "catalogadmin",
			},
		},
		cloudinary: env.CloudinaryURL,
		rateLimiter: rateLimiterConfig{
			requestsPerTimeFrame: env.RateLimiterCount,
			timeFrame:            time.Minute,
			enabled:              env.RateLimiterEnabled,
		},
		cors: corsConfig{allowedOrigins: env.CORSAllowedOrigins},
	}, nil
}

type envReader struct {
	getenv func(string) string
	errs   error
}

func (r *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(r.getenv(key))
	return v, v != ""
}

func (r *envReader) str(key string, dst *string) {
	if v, ok := r.lookup(key); ok {
		*dst = v
	}
}

func (r *envReader) int(key string, dst *int) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = multierr.Append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = n
}

func (r *envReader) bool(key string, dst *bool) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = multierr.Append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = b
}

func (r *envReader) duration(key string, dst *time.Duration) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = multierr.Append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = d
}

func (r *envReader) list(key string, dst *[]string) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

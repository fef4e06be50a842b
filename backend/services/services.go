// Package services holds the IQScaler business rules: test assembly,
// scoring, the certificate payment gate and account management.
package services

import (
	"log"

	"iqscaler/backend/cache"
	"iqscaler/backend/config"
	"iqscaler/backend/gateway"
	"iqscaler/backend/mailer"
	"iqscaler/backend/storage"
	"iqscaler/backend/store"
)

type Deps struct {
	Store   store.Store
	Gateway gateway.Gateway
	Mailer  mailer.Mailer
	Blobs   storage.BlobStore
	Cache   cache.LeaderboardCache
	Config  *config.Config
	Logger  *log.Logger
}

type Services struct {
	Users        *UserService
	Questions    *QuestionService
	Configs      *ConfigService
	Assembler    *Assembler
	Scorer       *Scorer
	Results      *ResultService
	Certificates *CertificateService
	Payments     *PaymentGate
	Contact      *ContactService
	Uploads      *UploadService
}

func New(d Deps) *Services {
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}
	st := d.Store
	return &Services{
		Users:        NewUserService(st.Users(), d.Mailer, d.Cache, d.Config, d.Logger),
		Questions:    NewQuestionService(st.Questions()),
		Configs:      NewConfigService(st.Configs()),
		Assembler:    NewAssembler(st.Questions(), st.Configs()),
		Scorer:       NewScorer(st.Questions(), st.Results(), d.Cache, d.Logger),
		Results:      NewResultService(st.Results(), d.Cache, d.Logger),
		Certificates: NewCertificateService(st.Results()),
		Payments:     NewPaymentGate(st.Results(), st.Payments(), d.Gateway, d.Config, d.Logger),
		Contact:      NewContactService(d.Mailer, d.Config),
		Uploads:      NewUploadService(d.Blobs),
	}
}

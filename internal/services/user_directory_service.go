package services

import (
	"time"

	"github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
	"go.uber.org/zap"
)

type UserRepository interface {
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (models.User, bool, error)
	Create(user *models.User) error
	UpdateProfile(email string, weightKg float64, heightM float64, diet models.Diet, bmi float64) (bool, error)
	UpdateCredential(email string, credential string) (bool, error)
	List() ([]models.User, error)
}

type UserDirectoryService struct {
	users       UserRepository
	credentials CredentialPolicy
	locks       *EmailLocks
	attempts    *AttemptLimiter
	log         *zap.Logger
	rng         nutrition.Shuffler
	now         func() time.Time
}

// NewUserDirectoryService builds the directory. attempts may be nil to
// disable failed-attempt throttling.
func NewUserDirectoryService(users UserRepository, credentials CredentialPolicy, locks *EmailLocks, attempts *AttemptLimiter, log *zap.Logger) *UserDirectoryService {
	if log == nil {
		log = zap.NewNop()
	}
	if locks == nil {
		locks = NewEmailLocks()
	}
	return &UserDirectoryService{
		users:       users,
		credentials: credentials,
		locks:       locks,
		attempts:    attempts,
		log:         log,
		now:         time.Now,
	}
}

func (service *UserDirectoryService) CredentialMode() CredentialMode {
	return service.credentials.Mode()
}

func (service *UserDirectoryService) Register(input RegistrationInput) (string, error) {
	input = NormalizeRegistrationInput(input)
	if err := ValidateRegistrationInput(input); err != nil {
		return "", err
	}

	unlock := service.locks.Lock(input.Email)
	defer unlock()

	exists, err := service.users.ExistsByEmail(input.Email)
	if err != nil {
		return "", storageError("check email", err)
	}
	if exists {
		return "", errors.Annotatef(ErrDuplicateEmail, "%s", input.Email)
	}

	sealed, err := service.credentials.Seal(input.Credential)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:            input.Email,
		Credential:       sealed,
		WeightKg:         input.WeightKg,
		HeightM:          input.HeightM,
		Sex:              input.Sex,
		Diet:             input.Diet,
		BMI:              nutrition.ComputeBMI(input.WeightKg, input.HeightM),
		RecoveryQuestion: input.RecoveryQuestion,
		RecoveryAnswer:   input.RecoveryAnswer,
		CreatedAt:        service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		service.log.Error("register user failed", zap.String("email", user.Email), zap.Error(err))
		return "", storageError("create user", err)
	}

	service.log.Info("user registered", zap.String("email", user.Email), zap.String("diet", string(user.Diet)))
	return user.Email, nil
}

func (service *UserDirectoryService) Authenticate(email string, credential string) (models.User, error) {
	key := "login:" + NormalizeEmail(email)
	if err := service.attempts.Check(key); err != nil {
		return models.User{}, err
	}
	user, err := service.findUser(email)
	if err != nil {
		return models.User{}, err
	}
	if !service.credentials.Matches(user.Credential, NormalizeCredential(credential)) {
		service.attempts.Fail(key)
		service.log.Warn("login rejected", zap.String("email", user.Email))
		return models.User{}, ErrWrongCredential
	}
	service.attempts.Reset(key)
	return user, nil
}

// RecoverCredential returns the stored credential after a correct recovery
// answer. When the stored form cannot be revealed a temporary credential
// replaces it and is returned instead.
func (service *UserDirectoryService) RecoverCredential(email string, answer string) (string, error) {
	key := "recover:" + NormalizeEmail(email)
	if err := service.attempts.Check(key); err != nil {
		return "", err
	}
	user, err := service.findUser(email)
	if err != nil {
		return "", err
	}
	if NormalizeRecoveryAnswer(answer) != user.RecoveryAnswer {
		service.attempts.Fail(key)
		service.log.Warn("credential recovery rejected", zap.String("email", user.Email))
		return "", ErrWrongAnswer
	}
	service.attempts.Reset(key)

	if credential, ok := service.credentials.Reveal(user.Credential); ok {
		return credential, nil
	}
	return service.replaceCredential(user.Email)
}

// ResetCredential issues a temporary credential. Plain storage does not need
// it because recovery already reveals the credential.
func (service *UserDirectoryService) ResetCredential(email string) (string, error) {
	if service.credentials.Mode() == CredentialModePlain {
		return "", ErrCredentialResetUnsupported
	}
	user, err := service.findUser(email)
	if err != nil {
		return "", err
	}
	return service.replaceCredential(user.Email)
}

func (service *UserDirectoryService) replaceCredential(email string) (string, error) {
	temporary, err := generateTemporaryCredential()
	if err != nil {
		return "", errors.Annotate(err, "generate temporary credential")
	}
	sealed, err := service.credentials.Seal(temporary)
	if err != nil {
		return "", err
	}

	unlock := service.locks.Lock(email)
	defer unlock()

	updated, err := service.users.UpdateCredential(email, sealed)
	if err != nil {
		return "", storageError("update credential", err)
	}
	if !updated {
		return "", ErrUserNotFound
	}
	service.log.Info("temporary credential issued", zap.String("email", email))
	return temporary, nil
}

// UpdateProfile replaces weight, height and diet and returns the new BMI.
func (service *UserDirectoryService) UpdateProfile(email string, weightKg float64, heightM float64, diet models.Diet) (float64, error) {
	email = NormalizeEmail(email)
	if err := validateMeasurements(weightKg, heightM); err != nil {
		return 0, err
	}
	if !diet.Valid() {
		return 0, ErrInvalidDiet
	}

	unlock := service.locks.Lock(email)
	defer unlock()

	bmi := nutrition.ComputeBMI(weightKg, heightM)
	updated, err := service.users.UpdateProfile(email, weightKg, heightM, diet, bmi)
	if err != nil {
		return 0, storageError("update profile", err)
	}
	if !updated {
		return 0, ErrUserNotFound
	}

	service.log.Info("profile updated", zap.String("email", email), zap.Float64("bmi", bmi))
	return bmi, nil
}

func (service *UserDirectoryService) Profile(email string) (models.User, error) {
	return service.findUser(email)
}

func (service *UserDirectoryService) ListUsers() ([]models.User, error) {
	users, err := service.users.List()
	if err != nil {
		return nil, storageError("list users", err)
	}
	return users, nil
}

// RecommendedFoods samples the reference foods of the user's diet.
func (service *UserDirectoryService) RecommendedFoods(email string) (models.Diet, []string, error) {
	user, err := service.findUser(email)
	if err != nil {
		return "", nil, err
	}
	foods, err := nutrition.SampleRecommendedFoods(user.Diet, nutrition.DefaultRecommendationCount, service.rng)
	if err != nil {
		return user.Diet, nil, err
	}
	return user.Diet, foods, nil
}

func (service *UserDirectoryService) findUser(email string) (models.User, error) {
	user, found, err := service.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, storageError("load user", err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

package service

import (
	"errors"
	"testing"

	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/constants"
)

func TestCaptchaDisabledSceneAlwaysPasses(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: constants.CaptchaProviderNone})
	if err := svc.Verify(constants.CaptchaSceneCheckout, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("challenge without image provider want ErrCaptchaConfigInvalid got %v", err)
	}
}

func TestCaptchaImageSceneRequiresCode(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: constants.CaptchaProviderImage,
		Scenes:   config.CaptchaSceneConfig{Checkout: true},
	})
	if err := svc.Verify(constants.CaptchaSceneCheckout, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("missing code want ErrCaptchaRequired got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("login scene is off and should pass, got %v", err)
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge should carry id and image")
	}
	err = svc.Verify(constants.CaptchaSceneCheckout, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong"})
	if !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("wrong code want ErrCaptchaInvalid got %v", err)
	}
}

func TestNormalizeCaptchaSettingDefaults(t *testing.T) {
	setting := NormalizeCaptchaSetting(CaptchaSetting{Provider: "turnstile"})
	if setting.Provider != constants.CaptchaProviderNone {
		t.Fatalf("unknown provider should fall back to none, got %s", setting.Provider)
	}
	if setting.Image.Length != 5 || setting.Image.Width != 240 || setting.Image.Height != 80 {
		t.Fatalf("unexpected image defaults: %+v", setting.Image)
	}
}

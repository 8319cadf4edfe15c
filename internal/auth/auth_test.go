package auth

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, "1h", "user-1", "ops@acme.test", "ADMIN", "SUPPLIER", "Acme")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ops@acme.test" || claims.Role != "ADMIN" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Organization != "Acme" {
		t.Errorf("organization = %q", claims.Organization)
	}

	if _, err := ParseJWT([]byte("other-secret"), token); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("correct horse battery", hash) {
		t.Error("valid password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hosteldb-backend/controllers"
	"hosteldb-backend/models"
	"hosteldb-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp wires the full router against an in-memory database.
func buildTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Persona{},
		&models.Habitacion{},
		&models.HabitacionAmenity{},
		&models.Reserva{},
		&models.Notificacion{},
		&models.Conversacion{},
		&models.ParticipanteConversacion{},
		&models.Mensaje{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	personaSvc := services.NewPersonaService(db)
	router := SetupRouter(
		controllers.NewPersonaController(personaSvc),
		controllers.NewHabitacionController(services.NewHabitacionService(db)),
		controllers.NewAmenityController(services.NewAmenityService(db)),
		controllers.NewReservaController(services.NewReservaService(db)),
		controllers.NewNotificacionController(services.NewNotificacionService(db)),
		controllers.NewConversacionController(services.NewConversacionService(db)),
		controllers.NewParticipanteController(services.NewParticipanteService(db)),
		controllers.NewMensajeController(services.NewMensajeService(db)),
		personaSvc,
	)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var parsed map[string]interface{}
	if resp.Body.Len() > 0 {
		if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response is not a JSON object: %v\n%s", err, resp.Body.String())
		}
	}
	return resp, parsed
}

func fechaWire(dias int) string {
	return time.Now().AddDate(0, 0, dias).Format("2006-01-02")
}

func TestRegistroYPerfil(t *testing.T) {
	router, _ := buildTestApp(t)

	resp, body := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"primerNombre":   "Ana",
		"primerApellido": "García",
		"correo":         "ana@example.com",
		"contrasena":     "secreto123",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("register response carries no token")
	}
	persona, _ := body["persona"].(map[string]interface{})
	if persona == nil {
		t.Fatal("register response carries no persona")
	}
	if _, ok := persona["contrasena"]; ok {
		t.Error("register response leaks the password field")
	}

	// Sin token el perfil es 401.
	resp, _ = doJSON(t, router, http.MethodGet, "/api/v1/personas/perfil", nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("perfil without token status = %d, want 401", resp.Code)
	}

	resp, body = doJSON(t, router, http.MethodGet, "/api/v1/personas/perfil", nil,
		map[string]string{"Authorization": "Bearer " + token})
	if resp.Code != http.StatusOK {
		t.Fatalf("perfil status = %d, want 200\n%s", resp.Code, resp.Body.String())
	}

	resp, _ = doJSON(t, router, http.MethodGet, "/api/v1/personas/perfil", nil,
		map[string]string{"Authorization": "Bearer basura"})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("perfil with a bad token status = %d, want 401", resp.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := buildTestApp(t)

	doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"primerNombre": "Ana",
		"correo":       "ana@example.com",
		"contrasena":   "secreto123",
	}, nil)

	resp, body := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"correo":     "ana@example.com",
		"contrasena": "secreto123",
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200\n%s", resp.Code, resp.Body.String())
	}
	if body["token"] == "" {
		t.Error("login response carries no token")
	}

	resp, body = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"correo":     "ana@example.com",
		"contrasena": "equivocada",
	}, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("login with a wrong password status = %d, want 401", resp.Code)
	}
	if errObj, _ := body["error"].(map[string]interface{}); errObj == nil || errObj["code"] == "" {
		t.Errorf("error body missing structured code: %s", resp.Body.String())
	}

	// Registrar el mismo correo otra vez es un conflicto, no un 400.
	resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"primerNombre": "Otra",
		"correo":       "ana@example.com",
		"contrasena":   "distinta",
	}, nil)
	if resp.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", resp.Code)
	}
}

func TestReservasEndToEnd(t *testing.T) {
	router, db := buildTestApp(t)

	habitacion := models.Habitacion{Titulo: "Doble", Tipo: "doble", Precio: "45.00"}
	if err := db.Create(&habitacion).Error; err != nil {
		t.Fatalf("seed room error = %v", err)
	}
	persona := models.Persona{PrimerNombre: "Ana", Correo: "ana@example.com", Contrasena: "hash", Tipo: models.TipoUsuario}
	if err := db.Create(&persona).Error; err != nil {
		t.Fatalf("seed persona error = %v", err)
	}

	crear := func(in, out string) (*httptest.ResponseRecorder, map[string]interface{}) {
		return doJSON(t, router, http.MethodPost, "/api/v1/reservas", map[string]interface{}{
			"habitacionId": habitacion.ID,
			"usuarioId":    persona.ID,
			"checkIn":      in,
			"checkOut":     out,
		}, nil)
	}

	resp, body := crear(fechaWire(10), fechaWire(15))
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}
	if body["mensaje"] != "Reserva creada exitosamente" {
		t.Errorf("mensaje = %v", body["mensaje"])
	}
	if id, _ := body["id"].(string); id == "" {
		t.Error("create response id is not a string")
	}

	// Solape con la primera reserva.
	resp, body = crear(fechaWire(12), fechaWire(18))
	if resp.Code != http.StatusConflict {
		t.Fatalf("overlapping create status = %d, want 409\n%s", resp.Code, resp.Body.String())
	}
	if errObj, _ := body["error"].(map[string]interface{}); errObj == nil || errObj["code"] != "error.habitacionNoDisponible" {
		t.Errorf("conflict error code = %v", body["error"])
	}
	if body["reservaConflicto"] == nil {
		t.Error("conflict response missing reservaConflicto")
	}

	// Intervalos contiguos no chocan.
	resp, _ = crear(fechaWire(15), fechaWire(18))
	if resp.Code != http.StatusCreated {
		t.Errorf("back-to-back create status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}

	resp, body = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/reservas/disponibilidad/verificar?habitacionId=%d&checkIn=%s&checkOut=%s",
			habitacion.ID, fechaWire(11), fechaWire(13)), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("availability status = %d, want 200\n%s", resp.Code, resp.Body.String())
	}
	if disponible, _ := body["disponible"].(bool); disponible {
		t.Error("availability over a taken range reports disponible = true")
	}
	if n, _ := body["reservasConflicto"].(float64); n != 1 {
		t.Errorf("reservasConflicto = %v, want 1", body["reservasConflicto"])
	}

	// Actualizar una reserva inexistente es 404.
	resp, _ = doJSON(t, router, http.MethodPut, "/api/v1/reservas/999", map[string]interface{}{
		"estado": "confirmada",
	}, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("update missing reservation status = %d, want 404", resp.Code)
	}
}

func TestRegistroYLoginEnPersonas(t *testing.T) {
	router, _ := buildTestApp(t)

	// El contrato original monta el registro y el login bajo /personas.
	resp, body := doJSON(t, router, http.MethodPost, "/api/v1/personas/register", map[string]interface{}{
		"primerNombre": "Ana",
		"correo":       "ana@example.com",
		"contrasena":   "secreto123",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("POST /personas/register status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("register response carries no token")
	}

	resp, body = doJSON(t, router, http.MethodPost, "/api/v1/personas/login", map[string]interface{}{
		"correo":     "ana@example.com",
		"contrasena": "secreto123",
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("POST /personas/login status = %d, want 200\n%s", resp.Code, resp.Body.String())
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("login response carries no token")
	}
}

func TestRutasContratoOriginal(t *testing.T) {
	router, db := buildTestApp(t)

	habitacion := models.Habitacion{Titulo: "Doble", Tipo: "doble", Precio: "45.00"}
	if err := db.Create(&habitacion).Error; err != nil {
		t.Fatalf("seed room error = %v", err)
	}
	ana := models.Persona{PrimerNombre: "Ana", Correo: "ana@example.com", Contrasena: "hash", Tipo: models.TipoUsuario}
	luis := models.Persona{PrimerNombre: "Luis", Correo: "luis@example.com", Contrasena: "hash", Tipo: models.TipoUsuario}
	if err := db.Create(&ana).Error; err != nil {
		t.Fatalf("seed persona error = %v", err)
	}
	if err := db.Create(&luis).Error; err != nil {
		t.Fatalf("seed persona error = %v", err)
	}

	resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/habitacion-amenities", map[string]interface{}{
		"habitacionId": habitacion.ID,
		"amenity":      "wifi",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("POST /habitacion-amenities status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}

	resp, body := doJSON(t, router, http.MethodPost, "/api/v1/conversaciones", map[string]interface{}{
		"participantes": []uint{ana.ID, luis.ID},
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("POST /conversaciones status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}
	conversacion, _ := body["conversacion"].(map[string]interface{})
	if conversacion == nil {
		t.Fatalf("create response carries no conversacion: %s", resp.Body.String())
	}
	conversacionID, _ := conversacion["id"].(float64)
	if conversacionID == 0 {
		t.Fatalf("conversacion id missing: %s", resp.Body.String())
	}

	resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/mensajes/enviar", map[string]interface{}{
		"conversacionId": conversacionID,
		"emisor":         ana.ID,
		"texto":          "hola desde la recepción",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("POST /mensajes/enviar status = %d, want 201\n%s", resp.Code, resp.Body.String())
	}

	// La búsqueda de texto devuelve una lista plana.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/mensajes/buscar/texto?texto=recepci%C3%B3n", nil)
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	if raw.Code != http.StatusOK {
		t.Fatalf("GET /mensajes/buscar/texto status = %d, want 200\n%s", raw.Code, raw.Body.String())
	}
	var encontrados []map[string]interface{}
	if err := json.Unmarshal(raw.Body.Bytes(), &encontrados); err != nil {
		t.Fatalf("search response is not a JSON list: %v\n%s", err, raw.Body.String())
	}
	if len(encontrados) != 1 {
		t.Errorf("search results = %d, want 1", len(encontrados))
	}

	resp, body = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/participantes-conversacion/buscar/comunes?persona1Id=%d&persona2Id=%d", ana.ID, luis.ID),
		nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("GET /participantes-conversacion/buscar/comunes status = %d, want 200\n%s", resp.Code, resp.Body.String())
	}
	if comunes, _ := body["conversaciones"].([]interface{}); len(comunes) != 1 {
		t.Errorf("conversaciones comunes = %v, want one id", body["conversaciones"])
	}

	resp, _ = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/notificaciones/usuario/%d/leer-todas", ana.ID), nil, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("PATCH /notificaciones/usuario/:id/leer-todas status = %d, want 200\n%s", resp.Code, resp.Body.String())
	}
}

func TestRutaNoEncontrada(t *testing.T) {
	router, _ := buildTestApp(t)

	resp, body := doJSON(t, router, http.MethodGet, "/api/v1/no-existe", nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
	if errObj, _ := body["error"].(map[string]interface{}); errObj == nil || errObj["code"] != "error.rutaNoEncontrada" {
		t.Errorf("fallback body = %s", resp.Body.String())
	}
}

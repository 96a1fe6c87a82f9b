// Package dto maps domain models to the wire format the client expects:
// string ids, renamed fields, derived sub-objects. Handlers never reshape
// by hand.
package dto

import (
	"strconv"
	"time"

	"hosteldb-backend/models"
)

const imagenPorDefecto = "/Habitaciones/default.webp"

type PersonaVista struct {
	ID             string `json:"id"`
	PrimerNombre   string `json:"primerNombre"`
	SegundoNombre  string `json:"segundoNombre"`
	PrimerApellido string `json:"primerApellido"`
	Prefijo        string `json:"prefijo"`
	Numero         string `json:"numero"`
	Correo         string `json:"correo"`
	Tipo           string `json:"tipo"`
	Foto           string `json:"foto"`
}

// FormatPersona never carries the password hash.
func FormatPersona(p models.Persona) PersonaVista {
	return PersonaVista{
		ID:             strconv.FormatUint(uint64(p.ID), 10),
		PrimerNombre:   p.PrimerNombre,
		SegundoNombre:  p.SegundoNombre,
		PrimerApellido: p.PrimerApellido,
		Prefijo:        p.Prefijo,
		Numero:         p.Numero,
		Correo:         p.Correo,
		Tipo:           p.Tipo,
		Foto:           p.Foto,
	}
}

func FormatPersonas(personas []models.Persona) []PersonaVista {
	out := make([]PersonaVista, 0, len(personas))
	for _, p := range personas {
		out = append(out, FormatPersona(p))
	}
	return out
}

type ReservaVista struct {
	ID               string `json:"id"`
	Codigo           string `json:"codigo"`
	HabitacionID     string `json:"habitacionId"`
	TituloHabitacion string `json:"tituloHabitacion"`
	Imagen           string `json:"imagen"`
	UsuarioID        string `json:"usuarioId"`
	UsuarioNombre    string `json:"usuarioNombre"`
	Correo           string `json:"correo"`
	CheckIn          string `json:"checkIn"`
	CheckOut         string `json:"checkOut"`
	Adultos          int    `json:"adultos"`
	Ninos            int    `json:"ninos"`
	Personas         string `json:"personas"`
	Precio           string `json:"precio"`
	Estado           string `json:"estado"`
	FechaCreacion    string `json:"fechaCreacion"`
}

func FormatReserva(r models.Reserva) ReservaVista {
	titulo := r.Habitacion.Titulo
	if titulo == "" {
		titulo = "Habitación " + strconv.FormatUint(uint64(r.HabitacionID), 10)
	}
	imagen := r.Habitacion.Portada
	if imagen == "" {
		imagen = imagenPorDefecto
	}
	return ReservaVista{
		ID:               strconv.FormatUint(uint64(r.ID), 10),
		Codigo:           r.Codigo,
		HabitacionID:     strconv.FormatUint(uint64(r.HabitacionID), 10),
		TituloHabitacion: titulo,
		Imagen:           imagen,
		UsuarioID:        strconv.FormatUint(uint64(r.UsuarioID), 10),
		UsuarioNombre:    r.UsuarioNombre,
		Correo:           r.Correo,
		CheckIn:          r.CheckIn.Format("2006-01-02"),
		CheckOut:         r.CheckOut.Format("2006-01-02"),
		Adultos:          r.Adultos,
		Ninos:            r.Ninos,
		Personas:         r.Personas,
		Precio:           r.Precio,
		Estado:           string(r.Estado),
		FechaCreacion:    r.FechaCreacion.Format(time.RFC3339),
	}
}

func FormatReservas(reservas []models.Reserva) []ReservaVista {
	out := make([]ReservaVista, 0, len(reservas))
	for _, r := range reservas {
		out = append(out, FormatReserva(r))
	}
	return out
}

type ConflictoVista struct {
	ID       string `json:"id"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Estado   string `json:"estado"`
}

func FormatConflicto(id uint, checkIn, checkOut time.Time, estado models.EstadoReserva) ConflictoVista {
	return ConflictoVista{
		ID:       strconv.FormatUint(uint64(id), 10),
		CheckIn:  checkIn.Format("2006-01-02"),
		CheckOut: checkOut.Format("2006-01-02"),
		Estado:   string(estado),
	}
}

type NotificacionVista struct {
	ID        string `json:"id"`
	IDUsuario string `json:"id_usuario"`
	Tipo      string `json:"tipo"`
	Estado    string `json:"estado"`
	Titulo    string `json:"titulo"`
	Fecha     string `json:"fecha"`
}

// FormatNotificacion maps the internal tipo to the client's read state:
// tipo "leida" means the notification was read.
func FormatNotificacion(n models.Notificacion) NotificacionVista {
	tipo := n.Tipo
	estado := "sin leer"
	if n.Tipo == models.NotificacionLeida {
		tipo = "sistema"
		estado = "leído"
	}
	fecha := n.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}
	return NotificacionVista{
		ID:        strconv.FormatUint(uint64(n.ID), 10),
		IDUsuario: strconv.FormatUint(uint64(n.UsuarioID), 10),
		Tipo:      tipo,
		Estado:    estado,
		Titulo:    n.Texto,
		Fecha:     fecha.Format(time.RFC3339),
	}
}

func FormatNotificaciones(notificaciones []models.Notificacion) []NotificacionVista {
	out := make([]NotificacionVista, 0, len(notificaciones))
	for _, n := range notificaciones {
		out = append(out, FormatNotificacion(n))
	}
	return out
}

type MensajeVista struct {
	ID             string `json:"id"`
	ConversacionID string `json:"conversacion_id"`
	Emisor         string `json:"emisor"`
	Texto          string `json:"texto"`
	Fecha          string `json:"fecha"`
}

func FormatMensaje(m models.Mensaje) MensajeVista {
	return MensajeVista{
		ID:             strconv.FormatUint(m.ID, 10),
		ConversacionID: strconv.FormatUint(uint64(m.ConversacionID), 10),
		Emisor:         strconv.FormatUint(uint64(m.Emisor), 10),
		Texto:          m.Texto,
		Fecha:          m.Fecha.Format(time.RFC3339),
	}
}

func FormatMensajes(mensajes []models.Mensaje) []MensajeVista {
	out := make([]MensajeVista, 0, len(mensajes))
	for _, m := range mensajes {
		out = append(out, FormatMensaje(m))
	}
	return out
}

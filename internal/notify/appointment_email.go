package notify

import (
	"bytes"
	"html/template"
)

const appointmentTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Olá {{.Name}},</p>
  {{if .Cancelled}}
  <p>Sua sessão foi cancelada. Detalhes:</p>
  {{else}}
  <p>Sua sessão foi agendada. Detalhes:</p>
  {{end}}
  <ul>
    <li>Data: {{.Date}}</li>
    <li>Horário: {{.Start}} às {{.End}}</li>
    {{if .Remote}}
    <li>Modalidade: teleconsulta (o link será enviado antes da sessão)</li>
    {{else}}
    <li>Sala: {{.Room}}</li>
    {{end}}
    <li>Número do agendamento: {{.AppointmentID}}</li>
  </ul>
  <p>Em caso de dúvida, entre em contato com a recepção.</p>
</body>
</html>`

var appointmentTmpl = template.Must(template.New("appointment_event").Parse(appointmentTemplate))

type appointmentEmailData struct {
	Name          string
	Cancelled     bool
	Date          string
	Start         string
	End           string
	Remote        bool
	Room          string
	AppointmentID uint
}

func buildAppointmentHTML(ev Event) (string, error) {
	room := ""
	if ev.Appointment.Room != nil {
		room = ev.Appointment.Room.Name
	}

	data := appointmentEmailData{
		Name:          ev.Patient.Name,
		Cancelled:     ev.Type == EventCancelled,
		Date:          ev.Appointment.StartTime.Format("02/01/2006"),
		Start:         ev.Appointment.StartTime.Format("15:04"),
		End:           ev.Appointment.EndTime.Format("15:04"),
		Remote:        ev.Appointment.Remote,
		Room:          room,
		AppointmentID: ev.Appointment.ID,
	}

	var buf bytes.Buffer
	if err := appointmentTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

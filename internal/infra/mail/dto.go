package mail

type ExportEmailData struct {
	Count    int
	Filename string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer dialer
}

package api

import "html/template"

// Page names rendered by the form handlers
const (
	pageError           = "error"
	pageProfileCreated  = "profile_created"
	pageLoginSuccess    = "login_success"
	pageLoginFailed     = "login_failed"
	pageVideoUploaded   = "video_uploaded"
	pagePictureUploaded = "picture_uploaded"
)

// Front-end pages the responses link back to
const (
	linkLogin           = "login.html"
	linkAddProfile      = "addprofile.html"
	linkVideos          = "videos.html"
	linkProfilePictures = "profile-pictures.html"
)

var pages = template.Must(template.New("pages").Parse(`
{{define "error"}}
<h1>Error</h1>
<p>{{.Message}}</p>
<a href="{{.Back}}">Go back</a>
{{end}}

{{define "profile_created"}}
<h1>Profile Created Successfully!</h1>
<p>Welcome, {{.Name}}!</p>
<p>Your profile has been created with email: {{.Email}}</p>
<a href="home.html">Go to Home</a>
<a href="login.html">Login</a>
{{end}}

{{define "login_success"}}
<h1>Login Successful!</h1>
<p>Welcome back, {{.Name}}!</p>
<a href="home.html">Go to Home</a>
{{end}}

{{define "login_failed"}}
<h1>Login Failed</h1>
<p>{{.Message}}</p>
<a href="login.html">Try again</a>
<a href="addprofile.html">Create account</a>
{{end}}

{{define "video_uploaded"}}
<h1>Video Uploaded Successfully!</h1>
<p>Title: {{.Title}}</p>
<p>File: {{.OriginalName}}</p>
<video width="400" controls>
  <source src="{{.Path}}" type="{{.MimeType}}">
  Your browser does not support the video tag.
</video>
<br><br>
<a href="videos.html">Back to Videos</a>
<a href="home.html">Go to Home</a>
{{end}}

{{define "picture_uploaded"}}
<h1>Profile Picture Uploaded Successfully!</h1>
<p>Profile picture for: {{.Email}}</p>
<img src="{{.Path}}" width="150" height="150" style="border-radius: 50%; object-fit: cover;">
<br><br>
<a href="profile-pictures.html">Back to Profile Pictures</a>
<a href="home.html">Go to Home</a>
{{end}}
`))

package main

import "html/template"

const reviewPage = `{{define "review.html"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Book.Title}} · Review</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
.nav { display: flex; gap: 1rem; margin-bottom: 1rem; }
.layout { display: grid; grid-template-columns: 4fr 2fr; gap: 2rem; }
.book { display: grid; grid-template-columns: 1fr 2fr; gap: 1.5rem; }
.reco { border-top: 1px solid #ddd; padding: .75rem 0; }
.flash { background: #e6f4ea; padding: .5rem 1rem; margin-bottom: 1rem; }
h1 { text-align: center; }
</style>
</head>
<body>
<div class="nav">
  <form method="post" action="/prev"><button type="submit">Previous</button></form>
  <form method="post" action="/next"><button type="submit">Next</button></form>
  <span>{{inc .Book.Index}} / {{.Book.Total}}</span>
</div>
{{if .Saved}}<div class="flash">Changes saved successfully!</div>{{end}}
<div class="layout">
  <div>
    <h1>{{.Book.Title}}</h1>
    <div class="book">
      <figure>
        <img src="{{.Book.ImageURL}}" width="300" alt="{{.Book.Title}}">
        <figcaption>{{.Book.Title}}</figcaption>
      </figure>
      <div>
        <p><strong>Author:</strong> {{.Book.Author}}</p>
        <p><strong>Subjects:</strong> {{.Book.Subjects}}</p>
        <p><strong>LCC_1:</strong> {{.Book.LCC1}}</p>
        <p><strong>LCC_2:</strong> {{.Book.LCC2}}</p>
        <p><strong>Description:</strong> {{.Book.Description}}</p>
      </div>
    </div>
  </div>
  <div>
    <h3>Recommendations</h3>
    <form method="post" action="/save">
      <input type="hidden" name="book_id" value="{{.Book.ID}}">
      {{range .Book.Recommendations}}
      <div class="reco">
        <label><input type="checkbox" name="correct_{{.Rank}}" value="true"{{if .IsCorrect}} checked{{end}}> {{.Label}}</label>
        <p>{{.FullName}}</p>
        <p><strong>Profile Link</strong>: <a href="{{.Link}}" target="_blank" rel="noopener">View Profile</a></p>
        <p><strong>Business Category</strong>: {{.BusinessCategory}}</p>
        <p><strong>Followers Count</strong>: {{.FollowersCount}}</p>
        <p><strong>Biography</strong>: {{.Biography}}</p>
        <details><summary>Show Additional Content</summary>{{trusted .AdditionalContent}}</details>
      </div>
      {{end}}
      <button type="submit">Save Changes</button>
    </form>
  </div>
</div>
</body>
</html>{{end}}`

const errorPage = `{{define "error.html"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Error</title></head>
<body>
<h1>{{.Title}}</h1>
<pre>{{.Message}}</pre>
<p><a href="/">Back</a></p>
</body>
</html>{{end}}`

// Zusatzinhalte stammen aus der eigenen Referenztabelle und werden ungefiltert als HTML ausgegeben.
var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"inc":     func(i int) int { return i + 1 },
	"trusted": func(s string) template.HTML { return template.HTML(s) },
}).Parse(reviewPage + errorPage))
